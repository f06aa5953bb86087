package tft

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"tftpanel/bus"
)

var ErrBitmapFormat = errors.New("unsupported bitmap")

// BitmapInfo describes the pixel data of an uncompressed 24-bit BMP.
type BitmapInfo struct {
	Width    int
	Height   int
	BottomUp bool   // rows stored last to first
	Offset   uint32 // start of pixel data in the file
}

// stride is the padded length of one row in bytes.
func (bi BitmapInfo) stride() int {
	return (bi.Width*3 + 3) &^ 3
}

// ReadBMPHeader parses a BMP header and advances r to the first pixel row.
// https://en.wikipedia.org/wiki/BMP_file_format
func ReadBMPHeader(r io.Reader) (BitmapInfo, error) {
	var hdr [54]byte // file header + BITMAPINFOHEADER
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return BitmapInfo{}, fmt.Errorf("bitmap header: %w", err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return BitmapInfo{}, fmt.Errorf("%w: bad signature", ErrBitmapFormat)
	}

	le := binary.LittleEndian
	offset := le.Uint32(hdr[10:])
	dibSize := le.Uint32(hdr[14:])
	width := int32(le.Uint32(hdr[18:]))
	height := int32(le.Uint32(hdr[22:]))
	bpp := le.Uint16(hdr[28:])
	compression := le.Uint32(hdr[30:])

	switch {
	case dibSize < 40:
		return BitmapInfo{}, fmt.Errorf("%w: dib header size %d", ErrBitmapFormat, dibSize)
	case bpp != 24:
		return BitmapInfo{}, fmt.Errorf("%w: %d bits per pixel", ErrBitmapFormat, bpp)
	case compression != 0:
		return BitmapInfo{}, fmt.Errorf("%w: compression %d", ErrBitmapFormat, compression)
	case width <= 0 || height == 0:
		return BitmapInfo{}, fmt.Errorf("%w: size %dx%d", ErrBitmapFormat, width, height)
	case offset < uint32(len(hdr)):
		return BitmapInfo{}, fmt.Errorf("%w: pixel offset %d", ErrBitmapFormat, offset)
	}

	bi := BitmapInfo{
		Width:    int(width),
		Height:   int(height),
		BottomUp: height > 0,
		Offset:   offset,
	}
	if height < 0 {
		bi.Height = int(-height)
	}

	// skip the rest of the header and any palette
	if _, err := io.CopyN(io.Discard, r, int64(offset)-int64(len(hdr))); err != nil {
		return BitmapInfo{}, fmt.Errorf("bitmap header: %w", err)
	}
	return bi, nil
}

// DisplayBitmap streams the BGR pixel rows described by bi from r, placing
// the top-left corner of the image at (x, y). Parts outside the display are
// read and discarded. The display is selected only while a row is sent, so
// r may be backed by another device on the same bus.
func (tft *TFTPanel) DisplayBitmap(x, y uint16, bi BitmapInfo, r io.Reader) error {
	if bi.Width <= 0 || bi.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrBitmapFormat, bi.Width, bi.Height)
	}
	cw, _, visible := tft.clip(x, y, uint16(min(bi.Width, 0xffff)), 1)
	row := make([]uint8, bi.stride())

	for i := 0; i < bi.Height; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return fmt.Errorf("bitmap row %d: %w", i, err)
		}
		dy := int(y) + i
		if bi.BottomUp {
			dy = int(y) + bi.Height - 1 - i
		}
		if !visible || dy >= int(tft.height) {
			continue
		}
		err := tft.dev.Do(func() error {
			if err := tft.setWindow(x, uint16(dy), x+cw-1, uint16(dy)); err != nil {
				return err
			}
			return tft.writeBGR(row[:int(cw)*3])
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DrawImage draws img with its bounds' top-left corner at (x, y), clipped
// to the display.
func (tft *TFTPanel) DrawImage(x, y uint16, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	cw, ch, ok := tft.clip(x, y, uint16(min(b.Dx(), 0xffff)), uint16(min(b.Dy(), 0xffff)))
	if !ok {
		return nil
	}

	return tft.dev.Do(func() error {
		if err := tft.setWindow(x, y, x+cw-1, y+ch-1); err != nil {
			return err
		}
		if err := bus.Drive(tft.dc, true); err != nil { // data mode
			return err
		}
		buf := tft.staging(2)
		n := 0
		for py := b.Min.Y; py < b.Min.Y+int(ch); py++ {
			for px := b.Min.X; px < b.Min.X+int(cw); px++ {
				c := color.RGBAModel.Convert(img.At(px, py)).(color.RGBA)
				p := FromRGBA(c).bytes()
				buf[n], buf[n+1] = p[0], p[1]
				n += 2
				if n == len(buf) {
					if err := tft.tx(buf); err != nil {
						return err
					}
					n = 0
				}
			}
		}
		if n > 0 {
			return tft.tx(buf[:n])
		}
		return nil
	})
}

// writeBGR converts packed BGR888 pixels to RGB565 and sends them as data.
func (tft *TFTPanel) writeBGR(bgr []uint8) error {
	if err := bus.Drive(tft.dc, true); err != nil { // data mode
		return err
	}
	buf := tft.staging(2)
	n := 0
	for i := 0; i+2 < len(bgr); i += 3 {
		p := RGB565(bgr[i+2], bgr[i+1], bgr[i]).bytes()
		buf[n], buf[n+1] = p[0], p[1]
		n += 2
		if n == len(buf) {
			if err := tft.tx(buf); err != nil {
				return err
			}
			n = 0
		}
	}
	if n > 0 {
		return tft.tx(buf[:n])
	}
	return nil
}
