package tft

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
)

var ErrFixedRotation = errors.New("rotation is fixed at construction")

// Displayer adapts the panel to drivers.Displayer so tinyfont and other
// TinyGo graphics code can draw on it. Every pixel goes straight to the
// controller; there is no frame buffer, so Display is a no-op.
type Displayer struct {
	tft *TFTPanel
	err error // first failure of a call that cannot return one
}

// Displayer returns a drivers.Displayer view of the panel.
func (tft *TFTPanel) Displayer() *Displayer {
	return &Displayer{tft: tft}
}

var _ drivers.Displayer = (*Displayer)(nil)

func (d *Displayer) Size() (x, y int16) {
	w, h := d.tft.Size()
	return int16(w), int16(h)
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	d.keep(d.tft.DrawPixel(uint16(x), uint16(y), FromRGBA(c)))
}

func (d *Displayer) Display() error {
	err := d.err
	d.err = nil
	return err
}

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if x < 0 {
		width += x
		x = 0
	}
	if y < 0 {
		height += y
		y = 0
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	return d.tft.FillRectangle(uint16(x), uint16(y), uint16(width), uint16(height), FromRGBA(c))
}

func (d *Displayer) SetScroll(line int16) {
	if line < 0 {
		line = 0
	}
	d.keep(d.tft.SetScroll(uint16(line)))
}

// SetRotation accepts only the rotation the panel was built with.
func (d *Displayer) SetRotation(rotation drivers.Rotation) error {
	if rotation != d.tft.Rotation() {
		return ErrFixedRotation
	}
	return nil
}

// Err returns the first failure recorded by SetPixel or SetScroll and
// clears it.
func (d *Displayer) Err() error {
	return d.Display()
}

func (d *Displayer) keep(err error) {
	if err != nil && d.err == nil {
		d.err = err
	}
}
