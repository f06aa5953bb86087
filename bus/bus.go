// Package bus is the transport contract shared by the display and touch
// drivers: one SPI bus, a chip select per device and a few control lines.
package bus

import (
	"time"

	"tinygo.org/x/drivers"
)

// DefaultMaxTxSize is the largest payload handed to the SPI in a single call
// when the port does not report its own limit.
const DefaultMaxTxSize = 32768

// Line is a host-driven control line (chip select, data/command, reset).
type Line interface {
	Set(high bool) error
}

// Input is a digital line read by the host.
type Input interface {
	Get() bool
}

// Config holds the bus settings; zero values select the defaults.
type Config struct {
	MaxTxSize int                 // largest single spi transfer, in bytes
	Delay     func(time.Duration) // blocking delay, time.Sleep if nil
}

// Bus is a serial bus shared by several devices. Only one device may be
// selected at any time.
type Bus struct {
	spi      drivers.SPI
	maxTx    int
	delay    func(time.Duration)
	selected *Device // device currently holding the bus
}

func New(spi drivers.SPI, cfg Config) *Bus {
	if cfg.MaxTxSize <= 0 {
		cfg.MaxTxSize = DefaultMaxTxSize
	}
	if cfg.Delay == nil {
		cfg.Delay = time.Sleep
	}
	return &Bus{
		spi:   spi,
		maxTx: cfg.MaxTxSize,
		delay: cfg.Delay,
	}
}

// MaxTxSize returns the largest payload accepted by a single Tx.
func (b *Bus) MaxTxSize() int {
	return b.maxTx
}

// Delay blocks for d.
func (b *Bus) Delay(d time.Duration) {
	if d > 0 {
		b.delay(d)
	}
}

// Selected returns the device currently holding the bus, or nil.
func (b *Bus) Selected() *Device {
	return b.selected
}

// Device attaches a peripheral with the given chip select line. A nil cs
// means the select line is managed by the spi hardware.
func (b *Bus) Device(name string, cs Line) *Device {
	return &Device{bus: b, name: name, cs: cs}
}
