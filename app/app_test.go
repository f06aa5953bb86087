package app

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tftpanel/bus"
	"tftpanel/fonts"
	"tftpanel/internal/sim"
	"tftpanel/tft"
	"tftpanel/touch"
)

type board struct {
	sim   *sim.Sim
	bus   *bus.Bus
	tft   *tft.TFTPanel
	touch *touch.XPT2046
}

func newBoard(t *testing.T) *board {
	t.Helper()
	s := sim.New(320, 240)
	b := bus.New(s, bus.Config{Delay: s.Delay})
	panel := tft.New(b, s.DisplayCS, s.DC, s.BL, s.RST, tft.DefaultConfig())
	require.NoError(t, panel.Configure())
	tp, err := touch.New(b, s.TouchCS, s.IRQ, touch.Config{Calibration: touch.DefaultCalibration()})
	require.NoError(t, err)
	return &board{sim: s, bus: b, tft: panel, touch: tp}
}

// press holds the pen over display point (x, y) of the landscape panel.
func (b *board) press(x, y uint16) {
	rawX, rawY := b.touch.Calibration().Unmap(y, x)
	b.sim.Press(rawX, rawY)
}

var quiet = log.New(io.Discard, "", 0)

func TestDemos(t *testing.T) {
	b := newBoard(t)
	d := NewDemo(b.tft, DemoConfig{
		Font:  fonts.Basic7x13,
		Pause: time.Second,
		Sleep: func(time.Duration) {},
		Log:   quiet,
	})

	require.NoError(t, d.Quadrant())
	assert.Equal(t, uint16(tft.RGB(RYB_BGREEN)), b.sim.Pixel(10, 10))
	assert.Equal(t, uint16(tft.RGB(RYB_YORANGE)), b.sim.Pixel(70, 70))
	assert.Equal(t, uint16(tft.RGB(RYB_BGREEN)), b.sim.Pixel(160, 200))

	require.NoError(t, d.ColorBlocks())
	assert.Equal(t, uint16(tft.RGB(shades[0][0])), b.sim.Pixel(0, 0))
	assert.Equal(t, uint16(tft.RGB(shades[9][9])), b.sim.Pixel(319, 239))

	require.NoError(t, d.StackedRectangles())
	assert.Equal(t, uint16(tft.RGB(CMY_BLUE)), b.sim.Pixel(10, 10))
	assert.Equal(t, uint16(tft.RGB(CMY_ORANGE)), b.sim.Pixel(160, 120))

	require.NoError(t, d.Run("all"))
	assert.Zero(t, b.sim.Violations())

	assert.Error(t, d.Run("nope"))
}

func TestBanner(t *testing.T) {
	b := newBoard(t)
	d := NewDemo(b.tft, DemoConfig{Font: fonts.Basic7x13, Log: quiet})

	require.NoError(t, d.Banner("II"))
	lit := 0
	for y := 0; y < 26; y++ {
		for x := 0; x < 14; x++ {
			if b.sim.Pixel(x, y) != uint16(tft.Black) {
				lit++
			}
		}
	}
	assert.NotZero(t, lit)

	d = NewDemo(b.tft, DemoConfig{Log: quiet})
	assert.ErrorIs(t, d.Banner("x"), tft.ErrNoGlyph)
}

func TestSketchpad(t *testing.T) {
	b := newBoard(t)
	sp := NewSketchpad(b.tft, b.touch, SketchConfig{Font: fonts.Basic7x13, Log: quiet})
	require.NoError(t, sp.Start())

	assert.Equal(t, uint16(tft.White), b.sim.Pixel(0, 0))
	btn := sp.Button()
	assert.Equal(t, uint16(tft.Red), b.sim.Pixel(btn.Min.X, btn.Min.Y))

	pressed, err := sp.Step()
	require.NoError(t, err)
	assert.False(t, pressed)

	b.press(100, 60)
	pressed, err = sp.Step()
	require.NoError(t, err)
	assert.True(t, pressed)
	assert.Equal(t, uint16(tft.Black), b.sim.Pixel(100, 60))
	assert.Equal(t, uint16(tft.Black), b.sim.Pixel(97, 57))
	assert.Equal(t, uint16(tft.White), b.sim.Pixel(110, 60))
	assert.Equal(t, uint8(Ink), sp.Buffer().At(8, 7))

	b.press(uint16(btn.Min.X+5), uint16(btn.Min.Y+5))
	pressed, err = sp.Step()
	require.NoError(t, err)
	assert.True(t, pressed)
	assert.Equal(t, tft.ImageBuffer{}, *sp.Buffer())
	assert.Equal(t, uint16(tft.White), b.sim.Pixel(100, 60))
	assert.Zero(t, b.sim.Violations())
}

func TestSketchpadEdge(t *testing.T) {
	b := newBoard(t)
	sp := NewSketchpad(b.tft, b.touch, SketchConfig{Log: quiet})
	require.NoError(t, sp.Start())

	b.press(0, 239)
	_, err := sp.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(tft.Black), b.sim.Pixel(0, 239))
	assert.Equal(t, uint8(Ink), sp.Buffer().At(0, 27))
}

func TestSketchpadTransportError(t *testing.T) {
	b := newBoard(t)
	sp := NewSketchpad(b.tft, b.touch, SketchConfig{Log: quiet})

	b.press(100, 60)
	b.sim.FailAfter(0)
	_, err := sp.Step()
	assert.ErrorIs(t, err, bus.ErrTransport)
	assert.Nil(t, b.bus.Selected())
}
