package tft

import "image/color"

// Color is a 16-bit RGB565 pixel: rrrrrggggggbbbbb.
type Color uint16

const (
	Black   Color = 0x0000
	Blue    Color = 0x001f
	Red     Color = 0xf800
	Green   Color = 0x07e0
	Cyan    Color = 0x07ff
	Magenta Color = 0xf81f
	Yellow  Color = 0xffe0
	White   Color = 0xffff
)

// RGB565 packs 8-bit channels into a Color, dropping the low bits.
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b&0xf8)>>3)
}

// RGB converts a 0xRRGGBB value.
func RGB(rgb uint32) Color {
	return RGB565(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// FromRGBA converts a color.RGBA, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB565(c.R, c.G, c.B)
}

// ToRGBA expands the color back to 8 bits per channel, replicating the high
// bits into the low ones so that white stays white.
func (c Color) ToRGBA() color.RGBA {
	r := uint8(c>>11) & 0x1f
	g := uint8(c>>5) & 0x3f
	b := uint8(c) & 0x1f
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// bytes returns the color in wire order (big-endian).
func (c Color) bytes() [2]uint8 {
	return [2]uint8{uint8(c >> 8), uint8(c)}
}
