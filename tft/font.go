package tft

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// FirstGlyph is the character code of the first glyph in a Font table.
const FirstGlyph = 32

var ErrNoGlyph = errors.New("no glyph for character")

// Font is a fixed-width bitmap font. Each glyph is Height rows of one
// uint16, bit 15 being the leftmost pixel; glyphs follow each other in
// character order starting at FirstGlyph.
type Font struct {
	Width  uint8 // at most 16
	Height uint8
	Data   []uint16
}

// Glyphs returns the number of characters in the table.
func (f *Font) Glyphs() int {
	if f.Height == 0 {
		return 0
	}
	return len(f.Data) / int(f.Height)
}

// Has reports whether ch has a glyph.
func (f *Font) Has(ch rune) bool {
	return ch >= FirstGlyph && int(ch-FirstGlyph) < f.Glyphs()
}

// GlyphRow returns the bit-packed row of ch.
func (f *Font) GlyphRow(ch rune, row int) (uint16, error) {
	if !f.Has(ch) || row < 0 || row >= int(f.Height) {
		return 0, ErrNoGlyph
	}
	return f.Data[int(ch-FirstGlyph)*int(f.Height)+row], nil
}

// GetGlyph implements tinyfont.Fonter. Characters without a glyph map to '?'.
func (f *Font) GetGlyph(r rune) tinyfont.Glypher {
	if !f.Has(r) {
		r = '?'
	}
	return glyph{font: f, r: r}
}

// GetYAdvance implements tinyfont.Fonter.
func (f *Font) GetYAdvance() uint8 {
	return f.Height
}

type glyph struct {
	font *Font
	r    rune
}

// Draw paints the set bits of the glyph with its bottom row on y.
func (g glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	top := y - int16(g.font.Height) + 1
	for row := 0; row < int(g.font.Height); row++ {
		bits, err := g.font.GlyphRow(g.r, row)
		if err != nil {
			return
		}
		for col := 0; col < int(g.font.Width); col++ {
			if bits&(0x8000>>col) != 0 {
				display.SetPixel(x+int16(col), top+int16(row), c)
			}
		}
	}
}

func (g glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    g.font.Width,
		Height:   g.font.Height,
		XAdvance: g.font.Width,
		XOffset:  0,
		YOffset:  -int8(g.font.Height - 1),
	}
}
