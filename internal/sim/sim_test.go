package sim

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesStartHigh(t *testing.T) {
	s := New(4, 3)
	for _, l := range []*Line{s.DisplayCS, s.TouchCS, s.DC, s.RST, s.BL} {
		assert.True(t, l.High(), l.name)
	}
	assert.True(t, s.IRQ.Get())
	w, h := s.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
}

func TestDisplayWindowWrite(t *testing.T) {
	s := New(4, 3)
	require.NoError(t, s.DisplayCS.Set(false))

	cmd := func(c uint8, data ...uint8) {
		require.NoError(t, s.DC.Set(false))
		require.NoError(t, s.Tx([]byte{c}, nil))
		require.NoError(t, s.DC.Set(true))
		if len(data) > 0 {
			require.NoError(t, s.Tx(data, nil))
		}
	}
	cmd(cmdCASET, 0, 1, 0, 2)
	cmd(cmdPASET, 0, 1, 0, 2)
	cmd(cmdRAMWR)
	// split pixel across transfers
	require.NoError(t, s.Tx([]byte{0xf8, 0x00, 0x07}, nil))
	require.NoError(t, s.Tx([]byte{0xe0, 0x00, 0x1f, 0xff, 0xff}, nil))
	require.NoError(t, s.DisplayCS.Set(true))

	assert.Equal(t, image.Rect(1, 1, 3, 3), s.Window())
	assert.Equal(t, uint16(0xf800), s.Pixel(1, 1))
	assert.Equal(t, uint16(0x07e0), s.Pixel(2, 1))
	assert.Equal(t, uint16(0x001f), s.Pixel(1, 2))
	assert.Equal(t, uint16(0xffff), s.Pixel(2, 2))
	assert.Equal(t, uint16(0), s.Pixel(0, 0))
	assert.Zero(t, s.Violations())

	f := s.Frame(nil)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, f.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, f.RGBAAt(2, 2))
	assert.Same(t, f, s.Frame(f))
}

func TestMadctlAndScroll(t *testing.T) {
	s := New(4, 3)
	require.NoError(t, s.DisplayCS.Set(false))
	require.NoError(t, s.DC.Set(false))
	require.NoError(t, s.Tx([]byte{cmdMADCTL}, nil))
	require.NoError(t, s.DC.Set(true))
	require.NoError(t, s.Tx([]byte{0xe8}, nil))
	require.NoError(t, s.DC.Set(false))
	require.NoError(t, s.Tx([]byte{cmdVSCRSADD}, nil))
	require.NoError(t, s.DC.Set(true))
	require.NoError(t, s.Tx([]byte{0x01, 0x02}, nil))

	assert.Equal(t, uint8(0xe8), s.Madctl())
	assert.Equal(t, uint16(0x0102), s.Scroll())
}

func TestViolations(t *testing.T) {
	s := New(4, 3)
	require.NoError(t, s.Tx([]byte{0}, nil))
	assert.Equal(t, 1, s.Violations())

	require.NoError(t, s.DisplayCS.Set(false))
	require.NoError(t, s.TouchCS.Set(false))
	assert.Equal(t, 2, s.Violations())
	require.NoError(t, s.Tx([]byte{0}, nil))
	assert.Equal(t, 3, s.Violations())
}

func TestTouchReads(t *testing.T) {
	s := New(4, 3)
	s.Press(0x1234, 0x5678)
	require.NoError(t, s.TouchCS.Set(false))

	var r [2]byte
	require.NoError(t, s.Tx([]byte{touchReadY}, nil))
	require.NoError(t, s.Tx([]byte{0, 0}, r[:]))
	assert.Equal(t, [2]byte{0x56, 0x78}, r)

	require.NoError(t, s.Tx([]byte{touchReadX}, nil))
	require.NoError(t, s.Tx([]byte{0, 0}, r[:]))
	assert.Equal(t, [2]byte{0x12, 0x34}, r)

	cmds, reads := s.TouchCounts()
	assert.Equal(t, 2, cmds)
	assert.Equal(t, 2, reads)

	s.ResetEvents()
	cmds, reads = s.TouchCounts()
	assert.Zero(t, cmds+reads)
	assert.Empty(t, s.Events())
}

func TestReleaseAfter(t *testing.T) {
	s := New(4, 3)
	s.Press(1, 1)
	s.ReleaseAfter(2)

	assert.False(t, s.IRQ.Get())
	assert.False(t, s.IRQ.Get())
	assert.True(t, s.IRQ.Get())
	assert.True(t, s.IRQ.Get())

	s.Press(1, 1)
	assert.False(t, s.IRQ.Get())
	s.Release()
	assert.True(t, s.IRQ.Get())
}

func TestFailAfter(t *testing.T) {
	s := New(4, 3)
	require.NoError(t, s.TouchCS.Set(false))
	s.FailAfter(1)

	assert.NoError(t, s.Tx([]byte{touchReadX}, nil))
	assert.ErrorIs(t, s.Tx([]byte{touchReadX}, nil), ErrInjected)
	assert.NoError(t, s.Tx([]byte{touchReadX}, nil))

	b, err := s.Transfer(touchReadY)
	require.NoError(t, err)
	assert.Zero(t, b)
}

func TestDelay(t *testing.T) {
	s := New(1, 1)
	s.Delay(5)
	s.Delay(7)
	assert.EqualValues(t, 12, s.Elapsed())
}
