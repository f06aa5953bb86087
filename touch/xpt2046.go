// Package touch reads a resistive touch panel through an XPT2046-class
// controller sharing the display's spi bus.
package touch

import (
	"tftpanel/bus"

	drvtouch "tinygo.org/x/drivers/touch"
)

const (
	CMD_READ_X uint8 = 0xd0 // differential X position, 12 bit
	CMD_READ_Y uint8 = 0x90 // differential Y position, 12 bit

	// DefaultSamples is the number of consecutive pressed samples averaged
	// into one reading.
	DefaultSamples = 16
)

// Config holds the sampler settings; zero values select the defaults.
type Config struct {
	Calibration Calibration
	Samples     int   // samples per reading
	ReadX       uint8 // x axis command
	ReadY       uint8 // y axis command
}

// XPT2046 samples the panel and reports calibrated coordinates.
type XPT2046 struct {
	dev     *bus.Device
	irq     bus.Input // pen interrupt, low while pressed
	cal     Calibration
	samples int
	readX   uint8
	readY   uint8

	cmdBuf [1]uint8
	zeros  [2]uint8
	rx     [2]uint8
}

// New attaches the touch controller with chip select cs to b. The
// calibration is validated here so a bad one never reaches the mapping.
func New(b *bus.Bus, cs bus.Line, irq bus.Input, cfg Config) (*XPT2046, error) {
	if err := cfg.Calibration.Validate(); err != nil {
		return nil, err
	}
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.ReadX == 0 {
		cfg.ReadX = CMD_READ_X
	}
	if cfg.ReadY == 0 {
		cfg.ReadY = CMD_READ_Y
	}
	return &XPT2046{
		dev:     b.Device("touch", cs),
		irq:     irq,
		cal:     cfg.Calibration,
		samples: cfg.Samples,
		readX:   cfg.ReadX,
		readY:   cfg.ReadY,
	}, nil
}

// Calibration returns the calibration in use.
func (d *XPT2046) Calibration() Calibration {
	return d.cal
}

// Pressed reports the pen interrupt line.
func (d *XPT2046) Pressed() bool {
	return !d.irq.Get()
}

// ReadRaw averages the configured number of samples. ok is false when the
// pen was lifted before all of them were taken; the partial sum is then
// discarded.
func (d *XPT2046) ReadRaw() (rawX, rawY uint16, ok bool, err error) {
	var sumX, sumY uint32
	n := 0

	err = d.dev.Do(func() error {
		for n < d.samples {
			if !d.Pressed() {
				return nil
			}
			y, err := d.readAxis(d.readY)
			if err != nil {
				return err
			}
			x, err := d.readAxis(d.readX)
			if err != nil {
				return err
			}
			sumX += uint32(x)
			sumY += uint32(y)
			n++
		}
		return nil
	})
	if err != nil || n < d.samples {
		return 0, 0, false, err
	}
	return uint16(sumX / uint32(n)), uint16(sumY / uint32(n)), true, nil
}

// ReadCoordinates returns the calibrated screen position of the pen. ok is
// false when there is no stable press.
func (d *XPT2046) ReadCoordinates() (x, y uint16, ok bool, err error) {
	rawX, rawY, ok, err := d.ReadRaw()
	if !ok {
		return 0, 0, false, err
	}
	x, y = d.cal.Map(rawX, rawY)
	return x, y, true, nil
}

// ReadTouchPoint implements the TinyGo touch.Pointer interface. Z is 1
// while pressed and 0 otherwise; bus failures read as no touch.
func (d *XPT2046) ReadTouchPoint() drvtouch.Point {
	x, y, ok, err := d.ReadCoordinates()
	if err != nil || !ok {
		return drvtouch.Point{}
	}
	return drvtouch.Point{X: int(x), Y: int(y), Z: 1}
}

var _ drvtouch.Pointer = (*XPT2046)(nil)

// readAxis sends an axis command and clocks in the 16-bit big-endian result.
func (d *XPT2046) readAxis(cmd uint8) (uint16, error) {
	d.cmdBuf[0] = cmd
	if err := d.dev.Tx(d.cmdBuf[:]); err != nil {
		return 0, err
	}
	if err := d.dev.Exchange(d.zeros[:], d.rx[:]); err != nil {
		return 0, err
	}
	return uint16(d.rx[0])<<8 | uint16(d.rx[1]), nil
}
