//go:build !tinygo

package hal

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"tftpanel/bus"
)

// PeriphConfig names the port and pins of a board attached to a Linux host.
// Pin names are anything gpioreg understands ("GPIO25", "P1_22"); an empty
// name leaves the line unwired.
type PeriphConfig struct {
	SPI     string           // spi port, "" for the first one
	Hz      physic.Frequency // bus clock
	DC      string
	RST     string
	BL      string
	CS      string // "" when the port drives the display chip select
	TouchCS string
	IRQ     string
}

// DefaultPeriphConfig is the usual Raspberry Pi wiring of the 2.8" shield.
func DefaultPeriphConfig() PeriphConfig {
	return PeriphConfig{
		Hz:      32 * physic.MegaHertz,
		DC:      "GPIO24",
		RST:     "GPIO25",
		TouchCS: "GPIO7",
		IRQ:     "GPIO17",
	}
}

// OpenPeriph initializes the host drivers, opens the spi port and claims the
// pins in cfg.
func OpenPeriph(cfg PeriphConfig) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}

	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", cfg.SPI, err)
	}
	c, err := port.Connect(cfg.Hz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi %q: %w", cfg.SPI, err)
	}

	spiBus, maxTx := wrapConn(c)
	b := &Board{
		SPI:       spiBus,
		MaxTxSize: maxTx,
		IRQ:       released{},
		close:     port.Close,
	}

	outputs := []struct {
		name string
		line *bus.Line
		init gpio.Level
	}{
		{cfg.DC, &b.DC, gpio.High},
		{cfg.RST, &b.RST, gpio.High},
		{cfg.BL, &b.BL, gpio.Low},
		{cfg.CS, &b.CS, gpio.High},
		{cfg.TouchCS, &b.TouchCS, gpio.High},
	}
	for _, o := range outputs {
		if o.name == "" {
			continue
		}
		l, err := outputPin(o.name, o.init)
		if err != nil {
			port.Close()
			return nil, err
		}
		*o.line = l
	}

	if cfg.IRQ != "" {
		in, err := inputPin(cfg.IRQ)
		if err != nil {
			port.Close()
			return nil, err
		}
		b.IRQ = in
	}
	return b, nil
}

// periphSPI adapts a periph spi connection to drivers.SPI.
type periphSPI struct {
	c spi.Conn
}

// wrapConn returns c as drivers.SPI along with its transfer limit, 0 when
// the connection does not report one.
func wrapConn(c spi.Conn) (*periphSPI, int) {
	maxTx := 0
	if l, ok := c.(conn.Limits); ok {
		maxTx = l.MaxTxSize()
	}
	return &periphSPI{c: c}, maxTx
}

func (s *periphSPI) Tx(w, r []byte) error {
	return s.c.Tx(w, r)
}

func (s *periphSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := s.c.Tx([]byte{b}, r[:])
	return r[0], err
}

type gpioLine struct {
	p gpio.PinOut
}

func (l gpioLine) Set(high bool) error {
	return l.p.Out(gpio.Level(high))
}

type gpioInput struct {
	p gpio.PinIn
}

func (i gpioInput) Get() bool {
	return i.p.Read() == gpio.High
}

func outputPin(name string, init gpio.Level) (gpioLine, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return gpioLine{}, fmt.Errorf("gpio %s not found", name)
	}
	if err := p.Out(init); err != nil {
		return gpioLine{}, fmt.Errorf("gpio %s: %w", name, err)
	}
	return gpioLine{p: p}, nil
}

func inputPin(name string) (gpioInput, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return gpioInput{}, fmt.Errorf("gpio %s not found", name)
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return gpioInput{}, fmt.Errorf("gpio %s: %w", name, err)
	}
	return gpioInput{p: p}, nil
}
