//go:build !tinygo

package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
)

type fakeConn struct {
	limit  int
	writes [][]byte
}

func (f *fakeConn) String() string { return "fake" }

func (f *fakeConn) Tx(w, r []byte) error {
	f.writes = append(f.writes, append([]byte(nil), w...))
	for i := range r {
		r[i] = 0x5a
	}
	return nil
}

func (f *fakeConn) Duplex() conn.Duplex { return conn.Full }

func (f *fakeConn) TxPackets(p []spi.Packet) error { return nil }

type limitedConn struct {
	fakeConn
}

func (l *limitedConn) MaxTxSize() int { return l.limit }

func TestWrapConn(t *testing.T) {
	c := &limitedConn{fakeConn{limit: 4096}}
	s, maxTx := wrapConn(c)
	assert.Equal(t, 4096, maxTx)

	require.NoError(t, s.Tx([]byte{1, 2, 3}, nil))
	b, err := s.Transfer(0x90)
	require.NoError(t, err)
	assert.Equal(t, byte(0x5a), b)
	assert.Equal(t, [][]byte{{1, 2, 3}, {0x90}}, c.writes)

	_, maxTx = wrapConn(&fakeConn{})
	assert.Zero(t, maxTx)
}

func TestGPIOAdapters(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO24"}
	l := gpioLine{p: p}

	require.NoError(t, l.Set(true))
	assert.Equal(t, gpio.High, p.L)
	require.NoError(t, l.Set(false))
	assert.Equal(t, gpio.Low, p.L)

	in := gpioInput{p: p}
	assert.False(t, in.Get())
	p.L = gpio.High
	assert.True(t, in.Get())
}

func TestBoardBus(t *testing.T) {
	s, maxTx := wrapConn(&limitedConn{fakeConn{limit: 128}})
	b := &Board{SPI: s, MaxTxSize: maxTx, IRQ: released{}}

	assert.Equal(t, 128, b.Bus().MaxTxSize())
	assert.True(t, b.IRQ.Get())
	assert.NoError(t, b.Close())
}
