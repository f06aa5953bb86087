//go:build tinygo

package hal

import (
	"fmt"
	"io"
	"machine"
	"os"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"

	"tftpanel/bus"
)

// MachinePins is the wiring of the display and touch controller on a
// microcontroller. machine.NoPin leaves a line unwired.
type MachinePins struct {
	DC      machine.Pin
	RST     machine.Pin
	BL      machine.Pin
	CS      machine.Pin
	TouchCS machine.Pin
	IRQ     machine.Pin
}

// NewMachineBoard configures the pins and returns the board on an already
// configured spi port.
func NewMachineBoard(spi *machine.SPI, pins MachinePins) *Board {
	b := &Board{
		SPI:     spi,
		DC:      outputPin(pins.DC, true),
		RST:     outputPin(pins.RST, true),
		BL:      outputPin(pins.BL, false),
		CS:      outputPin(pins.CS, true),
		TouchCS: outputPin(pins.TouchCS, true),
		IRQ:     released{},
	}
	if pins.IRQ != machine.NoPin {
		pins.IRQ.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		b.IRQ = pinInput{pins.IRQ}
	}
	return b
}

type pinLine struct {
	pin machine.Pin
}

func (l pinLine) Set(high bool) error {
	l.pin.Set(high)
	return nil
}

type pinInput struct {
	pin machine.Pin
}

func (i pinInput) Get() bool {
	return i.pin.Get()
}

func outputPin(pin machine.Pin, high bool) bus.Line {
	if pin == machine.NoPin {
		return nil
	}
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Set(high)
	return pinLine{pin}
}

// SDPins is the wiring of an SD card slot.
type SDPins struct {
	SCK, SDO, SDI, CS machine.Pin
}

// OpenSD mounts the FAT file system of the SD card on spi and opens name for
// reading.
func OpenSD(spi *machine.SPI, pins SDPins, name string) (io.ReadCloser, error) {
	sd := sdcard.New(spi, pins.SCK, pins.SDO, pins.SDI, pins.CS)
	if err := sd.Configure(); err != nil {
		return nil, fmt.Errorf("sdcard: %w", err)
	}

	filesystem := fatfs.New(&sd)
	filesystem.Configure(&fatfs.Config{
		SectorSize: 512,
	})
	if err := filesystem.Mount(); err != nil {
		return nil, fmt.Errorf("mount sdcard: %w", err)
	}

	f, err := filesystem.OpenFile(name, os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
