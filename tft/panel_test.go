package tft

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"

	"tftpanel/bus"
	"tftpanel/internal/sim"
)

func newTestPanel(t *testing.T, cfg Config, maxTx int) (*TFTPanel, *sim.Sim, *bus.Bus) {
	t.Helper()
	tft := New(bus.New(nil, bus.Config{}), nil, nil, nil, nil, cfg)
	w, h := tft.Size()
	s := sim.New(int(w), int(h))
	b := bus.New(s, bus.Config{MaxTxSize: maxTx, Delay: s.Delay})
	tft = New(b, s.DisplayCS, s.DC, s.BL, s.RST, cfg)
	return tft, s, b
}

// commands lists the display command bytes in the trace.
func commands(events []sim.Event) []uint8 {
	var cmds []uint8
	for _, e := range events {
		if e.Device == "tft" && e.Kind == sim.Command {
			cmds = append(cmds, e.Cmd)
		}
	}
	return cmds
}

// ramBytes sums the pixel data sent after RAMWR.
func ramBytes(events []sim.Event) int {
	n := 0
	for _, e := range events {
		if e.Kind == sim.Data && e.Cmd == CMD_RAMWR {
			n += e.Len
		}
	}
	return n
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		rot    drivers.Rotation
		mirror bool
		bgr    bool
		w, h   uint16
		madctl uint8
	}{
		{drivers.Rotation0, false, false, 240, 320, MADCTRL_MX},
		{drivers.Rotation90, false, false, 320, 240, MADCTRL_MV},
		{drivers.Rotation180, false, true, 240, 320, MADCTRL_MY | MADCTRL_BGR},
		{drivers.Rotation270, false, true, 320, 240, MADCTRL_MX | MADCTRL_MY | MADCTRL_MV | MADCTRL_BGR},
		{drivers.Rotation0, true, false, 240, 320, MADCTRL_MH},
		{drivers.Rotation90, true, false, 320, 240, MADCTRL_MV | MADCTRL_MY | MADCTRL_ML},
	}
	for _, tt := range tests {
		tft := New(bus.New(nil, bus.Config{}), nil, nil, nil, nil, Config{
			Rotation: tt.rot,
			Mirror:   tt.mirror,
			BGR:      tt.bgr,
		})
		w, h := tft.Size()
		assert.Equal(t, tt.w, w, "rotation %d", tt.rot)
		assert.Equal(t, tt.h, h, "rotation %d", tt.rot)
		assert.Equal(t, tt.madctl, tft.Madctl(), "rotation %d", tt.rot)
		assert.Equal(t, ILI9341.Name, tft.Model().Name)
	}
}

func TestDefaultGeometry(t *testing.T) {
	tft := New(bus.New(nil, bus.Config{}), nil, nil, nil, nil, DefaultConfig())
	w, h := tft.Size()
	assert.Equal(t, uint16(320), w)
	assert.Equal(t, uint16(240), h)
	assert.Equal(t, uint8(0xe8), tft.Madctl())
}

func TestConfigure(t *testing.T) {
	tft, s, b := newTestPanel(t, DefaultConfig(), 0)
	require.NoError(t, tft.Configure())

	var want []uint8
	var delay time.Duration
	for _, step := range ILI9341.Init {
		want = append(want, step.Cmd)
		delay += step.Delay
	}
	want = append(want, CMD_MADCTRL)

	assert.Equal(t, want, commands(s.Events()))
	assert.Equal(t, uint8(0xe8), s.Madctl())
	assert.Equal(t, delay+5*time.Millisecond, s.Elapsed())
	assert.True(t, s.BL.High())
	assert.True(t, s.RST.High())
	assert.True(t, s.DisplayCS.High())
	assert.Nil(t, b.Selected())
	assert.Zero(t, s.Violations())
}

func TestSoftwareReset(t *testing.T) {
	s := sim.New(320, 240)
	b := bus.New(s, bus.Config{Delay: s.Delay})
	tft := New(b, s.DisplayCS, s.DC, nil, nil, DefaultConfig())

	require.NoError(t, tft.Reset())
	assert.Equal(t, []uint8{CMD_SWRESET}, commands(s.Events()))
	assert.Equal(t, 150*time.Millisecond, s.Elapsed())
}

func TestFillRectangle(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)
	require.NoError(t, tft.FillRectangle(10, 20, 5, 4, Red))

	assert.Equal(t, image.Rect(10, 20, 15, 24), s.Window())
	assert.Equal(t, []uint8{CMD_CASET, CMD_PASET, CMD_RAMWR}, commands(s.Events()))
	assert.Equal(t, 5*4*2, ramBytes(s.Events()))
	for y := 18; y < 26; y++ {
		for x := 8; x < 17; x++ {
			want := uint16(0)
			if x >= 10 && x < 15 && y >= 20 && y < 24 {
				want = uint16(Red)
			}
			require.Equal(t, want, s.Pixel(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestFillRectangleClipped(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)
	require.NoError(t, tft.FillRectangle(318, 238, 10, 10, Green))

	assert.Equal(t, image.Rect(318, 238, 320, 240), s.Window())
	assert.Equal(t, 2*2*2, ramBytes(s.Events()))
	assert.Equal(t, uint16(Green), s.Pixel(319, 239))
}

func TestFillRectangleOffSurface(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)

	require.NoError(t, tft.FillRectangle(320, 0, 5, 5, Red))
	require.NoError(t, tft.FillRectangle(0, 240, 5, 5, Red))
	require.NoError(t, tft.FillRectangle(0, 0, 0, 5, Red))
	require.NoError(t, tft.FillRectangle(0, 0, 5, 0, Red))
	require.NoError(t, tft.DrawPixel(400, 400, Red))

	assert.Empty(t, s.Events())
}

func TestFillScreen(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)
	require.NoError(t, tft.FillScreen(White))

	assert.Equal(t, image.Rect(0, 0, 320, 240), s.Window())
	assert.Equal(t, 320*240*2, ramBytes(s.Events()))
	for _, p := range [][2]int{{0, 0}, {319, 0}, {0, 239}, {319, 239}, {160, 120}} {
		assert.Equal(t, uint16(0xffff), s.Pixel(p[0], p[1]))
	}
}

func TestLines(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)

	require.NoError(t, tft.DrawHLine(20, 10, 5, Cyan))
	assert.Equal(t, image.Rect(10, 5, 21, 6), s.Window())

	require.NoError(t, tft.DrawVLine(7, 30, 3, Magenta))
	assert.Equal(t, image.Rect(7, 3, 8, 31), s.Window())
	assert.Equal(t, uint16(Magenta), s.Pixel(7, 30))
	assert.Equal(t, uint16(Cyan), s.Pixel(15, 5))
}

func TestClear(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)
	var buf ImageBuffer
	buf.Set(3, 4, 255)
	buf.Set(27, 27, 255)

	require.NoError(t, tft.Clear(&buf))
	assert.Equal(t, ImageBuffer{}, buf)
	assert.Equal(t, uint16(White), s.Pixel(100, 100))

	require.NoError(t, tft.Clear(nil))
}

func TestScroll(t *testing.T) {
	tft, s, _ := newTestPanel(t, DefaultConfig(), 0)

	require.NoError(t, tft.SetScrollArea(10, 20))
	require.NoError(t, tft.SetScroll(42))
	assert.Equal(t, uint16(42), s.Scroll())
	require.NoError(t, tft.StopScroll())
	assert.Equal(t, []uint8{CMD_VSCRDEF, CMD_VSCRSADD, CMD_NORON}, commands(s.Events()))
}

func TestTransportErrorReleasesSelect(t *testing.T) {
	tft, s, b := newTestPanel(t, DefaultConfig(), 0)
	s.FailAfter(2)

	err := tft.FillRectangle(0, 0, 10, 10, Red)
	assert.ErrorIs(t, err, bus.ErrTransport)
	assert.ErrorIs(t, err, sim.ErrInjected)
	assert.True(t, s.DisplayCS.High())
	assert.Nil(t, b.Selected())

	require.NoError(t, tft.FillRectangle(0, 0, 10, 10, Red))
	assert.Equal(t, uint16(Red), s.Pixel(9, 9))
}

func TestSharedBusDiscipline(t *testing.T) {
	tft, s, b := newTestPanel(t, DefaultConfig(), 0)
	touch := b.Device("touch", s.TouchCS)

	err := touch.Do(func() error {
		return tft.FillScreen(Black)
	})
	assert.ErrorIs(t, err, bus.ErrBusy)
	assert.Zero(t, ramBytes(s.Events()))
	assert.Zero(t, s.Violations())
}

func TestImageBuffer(t *testing.T) {
	var buf ImageBuffer
	buf.Set(-1, 0, 1)
	buf.Set(0, ImageH, 1)
	assert.Equal(t, ImageBuffer{}, buf)

	buf.Set(5, 6, 255)
	assert.Equal(t, uint8(255), buf.At(5, 6))
	assert.Equal(t, uint8(0), buf.At(6, 5))
	assert.Equal(t, uint8(0), buf.At(28, 0))
	buf.Reset()
	assert.Equal(t, uint8(0), buf.At(5, 6))
}
