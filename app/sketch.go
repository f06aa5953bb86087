package app

import (
	"fmt"
	"image"
	"log"

	"tftpanel/tft"
	"tftpanel/touch"
)

// Ink is the scratch buffer value of a painted cell.
const Ink = 255

// SketchConfig holds the sketchpad settings; zero values select the
// defaults.
type SketchConfig struct {
	Font  *tft.Font   // button label, no label if nil
	Brush uint16      // brush square side, 6 if 0
	Ink   tft.Color   // stroke color, black if 0
	Log   *log.Logger // log.Default() if nil
}

// Sketchpad lets the user draw on the panel with the pen. Strokes are
// painted on the display and recorded, scaled down, in a 28x28 buffer. A
// CLR button in the top-right corner wipes both.
type Sketchpad struct {
	tft    *tft.TFTPanel
	touch  *touch.XPT2046
	buf    tft.ImageBuffer
	font   *tft.Font
	brush  uint16
	ink    tft.Color
	button image.Rectangle
	swap   bool // touch frame is transposed against the display
	log    *log.Logger
}

func NewSketchpad(panel *tft.TFTPanel, tp *touch.XPT2046, cfg SketchConfig) *Sketchpad {
	if cfg.Brush == 0 {
		cfg.Brush = 6
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}

	w, h := panel.Size()
	cal := tp.Calibration()
	return &Sketchpad{
		tft:    panel,
		touch:  tp,
		font:   cfg.Font,
		brush:  cfg.Brush,
		ink:    cfg.Ink,
		button: image.Rect(int(w)-52, 4, int(w)-4, 28),
		swap:   w != h && cal.ScaleX == h && cal.ScaleY == w,
		log:    cfg.Log,
	}
}

// Buffer returns the scratch buffer holding the strokes.
func (s *Sketchpad) Buffer() *tft.ImageBuffer {
	return &s.buf
}

// Button returns the area of the CLR button in display coordinates.
func (s *Sketchpad) Button() image.Rectangle {
	return s.button
}

// Start clears the display and the buffer and draws the button.
func (s *Sketchpad) Start() error {
	if err := s.tft.Clear(&s.buf); err != nil {
		return err
	}
	return s.drawButton()
}

// Step polls the touch panel once. pressed is true when a stable press was
// read and handled.
func (s *Sketchpad) Step() (pressed bool, err error) {
	tx, ty, ok, err := s.touch.ReadCoordinates()
	if err != nil {
		return false, fmt.Errorf("read touch: %w", err)
	}
	if !ok {
		return false, nil
	}

	p := s.toDisplay(tx, ty)
	if p.In(s.button) {
		s.log.Printf("clear sketch, %d cells inked", s.inked())
		return true, s.Start()
	}
	return true, s.paint(p)
}

// toDisplay converts touch coordinates to display coordinates.
func (s *Sketchpad) toDisplay(tx, ty uint16) image.Point {
	x, y := int(tx), int(ty)
	if s.swap {
		x, y = y, x
	}
	w, h := s.tft.Size()
	return image.Pt(min(x, int(w)-1), min(y, int(h)-1))
}

// paint draws a brush square centered on p and marks the matching cell of
// the buffer.
func (s *Sketchpad) paint(p image.Point) error {
	half := int(s.brush) / 2
	x, y := max(p.X-half, 0), max(p.Y-half, 0)
	if err := s.tft.FillRectangle(uint16(x), uint16(y), s.brush, s.brush, s.ink); err != nil {
		return err
	}

	w, h := s.tft.Size()
	s.buf.Set(p.X*tft.ImageW/int(w), p.Y*tft.ImageH/int(h), Ink)
	return nil
}

func (s *Sketchpad) drawButton() error {
	b := s.button
	if err := s.tft.FillRectangle(uint16(b.Min.X), uint16(b.Min.Y), uint16(b.Dx()), uint16(b.Dy()), tft.Red); err != nil {
		return err
	}
	if s.font == nil {
		return nil
	}
	tw := 3 * int(s.font.Width)
	x := b.Min.X + max(b.Dx()-tw, 0)/2
	y := b.Min.Y + max(b.Dy()-int(s.font.Height), 0)/2
	return s.tft.WriteString(uint16(x), uint16(y), "CLR", s.font, tft.White, tft.Red)
}

func (s *Sketchpad) inked() int {
	n := 0
	for y := range s.buf {
		for _, v := range s.buf[y] {
			if v == Ink {
				n++
			}
		}
	}
	return n
}
