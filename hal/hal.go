// Package hal connects the bus contract to real hardware: periph.io on a
// Linux host and the TinyGo machine package on a microcontroller.
package hal

import (
	"tinygo.org/x/drivers"

	"tftpanel/bus"
)

// Board is the wiring of one display and its touch controller.
type Board struct {
	SPI       drivers.SPI
	MaxTxSize int // 0 when the port does not report a limit

	DC      bus.Line
	RST     bus.Line // nil when not wired
	BL      bus.Line // nil when not wired
	CS      bus.Line // display chip select
	TouchCS bus.Line
	IRQ     bus.Input // touch pen interrupt

	close func() error
}

// Bus returns a bus over the board's spi port.
func (b *Board) Bus() *bus.Bus {
	return bus.New(b.SPI, bus.Config{MaxTxSize: b.MaxTxSize})
}

// Close releases the spi port.
func (b *Board) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// released is the interrupt of an unwired touch controller.
type released struct{}

func (released) Get() bool { return true }
