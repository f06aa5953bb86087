package tft

import "tftpanel/bus"

// WriteChar draws ch with its top-left corner at (x, y), painting set bits
// with fg and the rest of the cell with bg. A glyph that does not fit on
// the display entirely is not drawn.
func (tft *TFTPanel) WriteChar(x, y uint16, ch rune, font *Font, fg, bg Color) error {
	return tft.dev.Do(func() error {
		_, err := tft.writeChar(x, y, ch, font, fg, bg)
		return err
	})
}

// WriteString draws s left to right starting at (x, y). When the next
// character would cross the right edge the cursor wraps to the start of the
// next text line; once a line would cross the bottom edge the rest of the
// string is dropped.
func (tft *TFTPanel) WriteString(x, y uint16, s string, font *Font, fg, bg Color) error {
	if font == nil || font.Width == 0 || font.Height == 0 {
		return ErrNoGlyph
	}
	gw, gh := int(font.Width), int(font.Height)
	w, h := int(tft.width), int(tft.height)

	return tft.dev.Do(func() error {
		cx, cy := int(x), int(y)
		for _, ch := range s {
			if cx+gw > w {
				cx = 0
				cy += gh
			}
			if cy+gh > h || cx+gw > w {
				break
			}
			if _, err := tft.writeChar(uint16(cx), uint16(cy), ch, font, fg, bg); err != nil {
				return err
			}
			cx += gw
		}
		return nil
	})
}

// writeChar emits one glyph cell. drawn is false when the cell was skipped.
// The display must be selected.
func (tft *TFTPanel) writeChar(x, y uint16, ch rune, font *Font, fg, bg Color) (drawn bool, err error) {
	if !font.Has(ch) {
		ch = '?'
	}
	if !font.Has(ch) {
		return false, ErrNoGlyph
	}
	gw, gh := uint16(font.Width), uint16(font.Height)
	if uint32(x)+uint32(gw) > uint32(tft.width) || uint32(y)+uint32(gh) > uint32(tft.height) {
		return false, nil
	}

	if err := tft.setWindow(x, y, x+gw-1, y+gh-1); err != nil {
		return false, err
	}
	if err := bus.Drive(tft.dc, true); err != nil { // data mode
		return false, err
	}

	fgb, bgb := fg.bytes(), bg.bytes()
	buf := tft.staging(2)
	n := 0
	for row := 0; row < int(gh); row++ {
		bits, err := font.GlyphRow(ch, row)
		if err != nil {
			return false, err
		}
		for col := 0; col < int(gw); col++ {
			px := bgb
			if bits&(0x8000>>col) != 0 {
				px = fgb
			}
			buf[n], buf[n+1] = px[0], px[1]
			n += 2
			if n == len(buf) {
				if err := tft.tx(buf[:n]); err != nil {
					return false, err
				}
				n = 0
			}
		}
	}
	if n > 0 {
		if err := tft.tx(buf[:n]); err != nil {
			return false, err
		}
	}
	return true, nil
}
