// Package fonts provides glyph tables for the tft text renderer.
package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tftpanel/tft"
)

// lastGlyph is the last character rasterized into a table ('~').
const lastGlyph = 126

// Basic7x13 is basicfont.Face7x13 as a 7x13 cell table covering ASCII.
var Basic7x13 = FromFace(basicfont.Face7x13, 7, 13)

// FromFace rasterizes the printable ASCII characters of face into a table of
// width x height cells. The glyph baseline sits at the face's ascent; mask
// pixels with at least half coverage become set bits.
func FromFace(face font.Face, width, height int) *tft.Font {
	if width > 16 {
		width = 16
	}
	ascent := face.Metrics().Ascent.Ceil()

	f := &tft.Font{
		Width:  uint8(width),
		Height: uint8(height),
		Data:   make([]uint16, 0, (lastGlyph-tft.FirstGlyph+1)*height),
	}
	for ch := rune(tft.FirstGlyph); ch <= lastGlyph; ch++ {
		rows := make([]uint16, height)
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), ch)
		if ok {
			for y := max(dr.Min.Y, 0); y < min(dr.Max.Y, height); y++ {
				for x := max(dr.Min.X, 0); x < min(dr.Max.X, width); x++ {
					_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
					if a >= 0x8000 {
						rows[y] |= 0x8000 >> x
					}
				}
			}
		}
		f.Data = append(f.Data, rows...)
	}
	return f
}
