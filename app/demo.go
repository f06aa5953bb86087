// Package app holds the programs shown on the panel: a set of drawing
// demos and a touch sketchpad.
package app

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"tinygo.org/x/tinyfont"

	"tftpanel/tft"
)

// DemoNames lists the demos in the order Run("all") plays them.
var DemoNames = []string{"fill", "quadrant", "blocks", "stacked", "banner"}

type Demo struct {
	tft   *tft.TFTPanel
	font  *tft.Font
	pause time.Duration
	sleep func(time.Duration)
	log   *log.Logger
}

// DemoConfig holds the demo settings; zero values select the defaults.
type DemoConfig struct {
	Font  *tft.Font           // banner font
	Pause time.Duration       // time each screen is shown
	Sleep func(time.Duration) // time.Sleep if nil
	Log   *log.Logger         // log.Default() if nil
}

func NewDemo(panel *tft.TFTPanel, cfg DemoConfig) *Demo {
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	return &Demo{
		tft:   panel,
		font:  cfg.Font,
		pause: cfg.Pause,
		sleep: cfg.Sleep,
		log:   cfg.Log,
	}
}

// Run plays the named demos, "all" standing for every one of them.
func (d *Demo) Run(names ...string) error {
	var list []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "all" {
			list = append(list, DemoNames...)
			continue
		}
		list = append(list, n)
	}

	for _, name := range list {
		var err error
		switch name {
		case "fill":
			err = d.ScreenFill(CMYPalette)
		case "quadrant":
			err = d.Quadrant()
		case "blocks":
			err = d.ColorBlocks()
		case "stacked":
			err = d.StackedRectangles()
		case "banner":
			err = d.Banner("tftpanel")
		default:
			return fmt.Errorf("unknown demo %q", name)
		}
		if err != nil {
			return fmt.Errorf("demo %s: %w", name, err)
		}
		d.log.Printf("demo %s done", name)
		d.sleep(d.pause)
	}
	return nil
}

// ScreenFill shows every color of the palette full screen.
func (d *Demo) ScreenFill(palette []uint32) error {
	for _, c := range palette {
		if err := d.tft.FillScreen(tft.RGB(c)); err != nil {
			return err
		}
		d.sleep(d.pause)
	}
	return nil
}

// Quadrant draws a square in the top-left corner and a cross splitting the
// screen, which shows the orientation of the panel.
func (d *Demo) Quadrant() error {
	fg, bg := tft.RGB(RYB_BGREEN), tft.RGB(RYB_YORANGE)
	width, height := d.tft.Size()

	if err := d.tft.FillScreen(bg); err != nil {
		return err
	}
	if err := d.tft.FillRectangle(10, 10, 50, 50, fg); err != nil {
		return err
	}
	if err := d.tft.DrawHLine(10, width-20, height/3, fg); err != nil {
		return err
	}
	return d.tft.DrawVLine(width/2, 10, height-20, fg)
}

// ColorBlocks tiles the screen with a 10x10 grid of shades.
func (d *Demo) ColorBlocks() error {
	width, height := d.tft.Size()
	bw := width / 10
	bh := height / 10
	for x := uint16(0); x < 10; x++ {
		for y := uint16(0); y < 10; y++ {
			if err := d.tft.FillRectangle(x*bw, y*bh, bw, bh, tft.RGB(shades[x][y])); err != nil {
				return err
			}
		}
	}
	return nil
}

// StackedRectangles paints the four quarters and a centered rectangle over
// them.
func (d *Demo) StackedRectangles() error {
	width, height := d.tft.Size()
	rects := []struct {
		x, y, w, h uint16
		c          uint32
	}{
		{0, 0, width / 2, height / 2, CMY_BLUE},                     // upper-left
		{width / 2, 0, width / 2, height / 2, 0xea4335},             // upper-right
		{0, height / 2, width / 2, height / 2, RYB_GREEN},           // lower-left
		{width / 2, height / 2, width / 2, height / 2, RYB_YORANGE}, // lower-right
		{width / 4, height / 4, width / 2, height / 2, CMY_ORANGE},  // middle
	}
	for _, r := range rects {
		if err := d.tft.FillRectangle(r.x, r.y, r.w, r.h, tft.RGB(r.c)); err != nil {
			return err
		}
	}
	return nil
}

// Banner writes text with the panel's own renderer on the first line and
// through tinyfont on the line below.
func (d *Demo) Banner(text string) error {
	if d.font == nil {
		return tft.ErrNoGlyph
	}
	if err := d.tft.FillScreen(tft.Black); err != nil {
		return err
	}
	if err := d.tft.WriteString(0, 0, text, d.font, tft.White, tft.Black); err != nil {
		return err
	}

	display := d.tft.Displayer()
	y := 2*int16(d.font.Height) - 1
	tinyfont.WriteLine(display, d.font, 0, y, text, color.RGBA{R: 0xff, G: 0xcc, B: 0x1a, A: 0xff})
	return display.Display()
}
