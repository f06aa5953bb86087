package sim

import (
	"image"
	"image/color"
)

func (s *Sim) command(b uint8) {
	s.record(Event{Kind: Command, Device: "tft", Cmd: b, Len: 1})
	s.cmd = b
	s.params = s.params[:0]
	switch b {
	case cmdRAMWR:
		s.cx, s.cy = s.col0, s.row0
		s.half = false
	case cmdSWRESET:
		s.madctl = 0
		s.scroll = 0
	}
}

func (s *Sim) data(p []uint8) {
	s.record(Event{Kind: Data, Device: "tft", Cmd: s.cmd, Len: len(p)})
	if s.cmd == cmdRAMWR {
		for _, b := range p {
			if !s.half {
				s.hi, s.half = b, true
				continue
			}
			s.half = false
			s.pixel(uint16(s.hi)<<8 | uint16(b))
		}
		return
	}

	s.params = append(s.params, p...)
	switch {
	case s.cmd == cmdCASET && len(s.params) >= 4:
		s.col0, s.col1 = be(s.params[0:]), be(s.params[2:])
	case s.cmd == cmdPASET && len(s.params) >= 4:
		s.row0, s.row1 = be(s.params[0:]), be(s.params[2:])
	case s.cmd == cmdMADCTL && len(s.params) >= 1:
		s.madctl = s.params[0]
	case s.cmd == cmdVSCRSADD && len(s.params) >= 2:
		s.scroll = uint16(be(s.params))
	}
}

// pixel stores v at the write cursor and advances it through the window,
// wrapping to the first row like the controller does.
func (s *Sim) pixel(v uint16) {
	if s.cx >= 0 && s.cx < s.width && s.cy >= 0 && s.cy < s.height {
		s.fb[s.cy*s.width+s.cx] = v
	}
	s.cx++
	if s.cx > s.col1 {
		s.cx = s.col0
		s.cy++
		if s.cy > s.row1 {
			s.cy = s.row0
		}
	}
}

func be(p []uint8) int {
	return int(p[0])<<8 | int(p[1])
}

// Pixel returns the RGB565 value at (x, y).
func (s *Sim) Pixel(x, y int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0
	}
	return s.fb[y*s.width+x]
}

// Window returns the last address window as a half-open rectangle.
func (s *Sim) Window() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return image.Rect(s.col0, s.row0, s.col1+1, s.row1+1)
}

// Madctl returns the last memory access control byte written.
func (s *Sim) Madctl() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.madctl
}

// Scroll returns the vertical scroll start address.
func (s *Sim) Scroll() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll
}

// Frame renders the framebuffer as an RGBA image. dst is reused when it
// has the right size.
func (s *Sim) Frame(dst *image.RGBA) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dst == nil || dst.Rect.Dx() != s.width || dst.Rect.Dy() != s.height {
		dst = image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			dst.SetRGBA(x, y, expand(s.fb[y*s.width+x]))
		}
	}
	return dst
}

// expand widens an RGB565 value to 8 bits per channel.
func expand(v uint16) color.RGBA {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}
