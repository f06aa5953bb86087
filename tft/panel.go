package tft

import (
	"time"

	"tftpanel/bus"

	"tinygo.org/x/drivers"
)

// DefaultStagingSize is the size of the pixel staging buffer used for fills.
const DefaultStagingSize = 4096

// Config selects the controller and the fixed orientation of the surface.
type Config struct {
	Model       Model            // controller, ILI9341 if unset
	Rotation    drivers.Rotation // clock-wise rotation
	Mirror      bool             // mirror the horizontal axis
	BGR         bool             // panel wired blue-green-red
	StagingSize int              // bytes staged per pixel transfer
}

// DefaultConfig is the 320x240 landscape ILI9341 setup.
func DefaultConfig() Config {
	return Config{
		Model:    ILI9341,
		Rotation: drivers.Rotation270,
		BGR:      true,
	}
}

type TFTPanel struct {
	bus    *bus.Bus
	dev    *bus.Device
	dc     bus.Line // tft data / command
	bl     bus.Line // tft backlight
	rst    bus.Line // tft reset
	model  Model
	width  uint16 // logical pixel width
	height uint16 // logical pixel height
	rot    drivers.Rotation
	mirror bool
	bgr    bool
	madctl uint8 // fixed at construction

	cmdBuf    [1]uint8
	stage     []uint8
	stageSize int
}

// New attaches a panel to b. cs, bl and rst may be nil when the line is not
// wired or handled by hardware. The surface geometry is fixed here.
func New(b *bus.Bus, cs, dc, bl, rst bus.Line, cfg Config) *TFTPanel {
	if cfg.Model.Width == 0 || cfg.Model.Height == 0 {
		cfg.Model = ILI9341
	}
	if cfg.StagingSize <= 0 {
		cfg.StagingSize = DefaultStagingSize
	}

	tft := &TFTPanel{
		bus:       b,
		dev:       b.Device("tft", cs),
		dc:        dc,
		bl:        bl,
		rst:       rst,
		model:     cfg.Model,
		rot:       cfg.Rotation % 4,
		mirror:    cfg.Mirror,
		bgr:       cfg.BGR,
		stageSize: cfg.StagingSize,
	}
	tft.madctl = madctl(tft.rot, tft.mirror, tft.bgr)
	if tft.madctl&MADCTRL_MV != 0 {
		tft.width, tft.height = cfg.Model.Height, cfg.Model.Width
	} else {
		tft.width, tft.height = cfg.Model.Width, cfg.Model.Height
	}
	return tft
}

// Configure resets the controller, replays the model's init table, programs
// the memory access mode and turns the backlight on.
func (tft *TFTPanel) Configure() error {
	if err := bus.Drive(tft.dc, true); err != nil {
		return err
	}
	if err := bus.Drive(tft.bl, false); err != nil { // display off
		return err
	}
	if err := bus.Drive(tft.rst, true); err != nil {
		return err
	}

	err := tft.dev.Do(func() error {
		if err := tft.Reset(); err != nil {
			return err
		}
		if err := tft.replay(tft.model.Init); err != nil {
			return err
		}
		return tft.writeCmd(CMD_MADCTRL, tft.madctl)
	})
	if err != nil {
		return err
	}

	return tft.SetBacklight(true)
}

// Model returns the controller description.
func (tft *TFTPanel) Model() Model {
	return tft.model
}

// Size returns the logical size of the display.
func (tft *TFTPanel) Size() (uint16, uint16) {
	return tft.width, tft.height
}

// Rotation returns the clock-wise rotation of the display.
func (tft *TFTPanel) Rotation() drivers.Rotation {
	return tft.rot
}

// Mirror returns true if the display shows a mirrored image.
func (tft *TFTPanel) Mirror() bool {
	return tft.mirror
}

// BGR returns true if the display is in blue-green-red mode.
func (tft *TFTPanel) BGR() bool {
	return tft.bgr
}

// Madctl returns the memory access control byte sent at init.
func (tft *TFTPanel) Madctl() uint8 {
	return tft.madctl
}

// DrawPixel draws a single pixel with the specified color.
func (tft *TFTPanel) DrawPixel(x, y uint16, c Color) error {
	return tft.FillRectangle(x, y, 1, 1, c)
}

// DrawHLine draws a horizontal line with the specified color.
func (tft *TFTPanel) DrawHLine(x0, x1, y uint16, c Color) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return tft.FillRectangle(x0, y, x1-x0+1, 1, c)
}

// DrawVLine draws a vertical line with the specified color.
func (tft *TFTPanel) DrawVLine(x, y0, y1 uint16, c Color) error {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return tft.FillRectangle(x, y0, 1, y1-y0+1, c)
}

// FillScreen fills the screen with the specified color.
func (tft *TFTPanel) FillScreen(c Color) error {
	return tft.FillRectangle(0, 0, tft.width, tft.height, c)
}

// FillRectangle fills a rectangle with the specified color. The rectangle is
// clipped to the display; one lying entirely outside it draws nothing.
func (tft *TFTPanel) FillRectangle(x, y, width, height uint16, c Color) error {
	w, h, ok := tft.clip(x, y, width, height)
	if !ok {
		return nil
	}
	return tft.dev.Do(func() error {
		if err := tft.setWindow(x, y, x+w-1, y+h-1); err != nil {
			return err
		}
		px := c.bytes()
		return tft.repeat(px[:], int(w)*int(h))
	})
}

// Clear fills the screen white and zeroes the scratch buffer.
func (tft *TFTPanel) Clear(buf *ImageBuffer) error {
	if buf != nil {
		buf.Reset()
	}
	return tft.FillScreen(White)
}

// SetScrollArea sets an area to scroll with fixed top/bottom parts of the
// display, in native (unrotated) rows.
func (tft *TFTPanel) SetScrollArea(topFixedArea, bottomFixedArea uint16) error {
	vertScrollArea := tft.model.Height - topFixedArea - bottomFixedArea
	return tft.dev.Do(func() error {
		return tft.writeCmd(CMD_VSCRDEF,
			uint8(topFixedArea>>8),
			uint8(topFixedArea),
			uint8(vertScrollArea>>8),
			uint8(vertScrollArea),
			uint8(bottomFixedArea>>8),
			uint8(bottomFixedArea))
	})
}

// SetScroll sets the vertical scroll address of the display.
func (tft *TFTPanel) SetScroll(line uint16) error {
	return tft.dev.Do(func() error {
		return tft.writeCmd(CMD_VSCRSADD, uint8(line>>8), uint8(line))
	})
}

// StopScroll returns the display to its normal state.
func (tft *TFTPanel) StopScroll() error {
	return tft.dev.Do(func() error {
		return tft.writeCmd(CMD_NORON)
	})
}

// SetBacklight turns the backlight on / off.
func (tft *TFTPanel) SetBacklight(on bool) error {
	return bus.Drive(tft.bl, on)
}

// Reset performs a hardware reset if the reset line is wired, otherwise a
// CMD_SWRESET software reset.
func (tft *TFTPanel) Reset() error {
	return tft.dev.Do(func() error {
		if tft.rst == nil {
			if err := tft.writeCmd(CMD_SWRESET); err != nil {
				return err
			}
			tft.bus.Delay(150 * time.Millisecond)
			return nil
		}
		if err := bus.Drive(tft.rst, false); err != nil {
			return err
		}
		tft.bus.Delay(5 * time.Millisecond)
		return bus.Drive(tft.rst, true)
	})
}

// clip limits a rectangle to the display. ok is false when nothing of it is
// visible.
func (tft *TFTPanel) clip(x, y, width, height uint16) (w, h uint16, ok bool) {
	if x >= tft.width || y >= tft.height || width == 0 || height == 0 {
		return 0, 0, false
	}
	w, h = width, height
	if uint32(x)+uint32(w) > uint32(tft.width) {
		w = tft.width - x
	}
	if uint32(y)+uint32(h) > uint32(tft.height) {
		h = tft.height - y
	}
	return w, h, true
}

// setWindow defines the inclusive output area for the following pixel data
// and starts the memory write. The caller has already clipped it.
func (tft *TFTPanel) setWindow(x0, y0, x1, y1 uint16) error {
	if err := tft.writeCmd(CMD_CASET,
		uint8(x0>>8),
		uint8(x0),
		uint8(x1>>8),
		uint8(x1),
	); err != nil {
		return err
	}
	if err := tft.writeCmd(CMD_PASET,
		uint8(y0>>8),
		uint8(y0),
		uint8(y1>>8),
		uint8(y1),
	); err != nil {
		return err
	}
	return tft.command(CMD_RAMWR)
}

// madctl folds rotation, mirroring and color order into CMD_MADCTRL.
func madctl(rot drivers.Rotation, mirror, bgr bool) uint8 {
	var m uint8
	switch rot {
	case drivers.Rotation0:
		m = MADCTRL_MX
	case drivers.Rotation90:
		m = MADCTRL_MV
	case drivers.Rotation180:
		m = MADCTRL_MY
	case drivers.Rotation270:
		m = MADCTRL_MX | MADCTRL_MY | MADCTRL_MV
	}

	if mirror {
		if m&MADCTRL_MV != 0 {
			m ^= MADCTRL_MY | MADCTRL_ML
		} else {
			m ^= MADCTRL_MX | MADCTRL_MH
		}
	}

	if bgr {
		m |= MADCTRL_BGR
	}
	return m
}
