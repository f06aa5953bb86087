package tft

// Scratch buffer dimensions.
const (
	ImageW = 28
	ImageH = 28
)

// ImageBuffer is a small grayscale canvas kept next to the display, e.g. the
// input of a digit classifier fed by touch strokes. It is owned by the caller.
type ImageBuffer [ImageH][ImageW]uint8

// Reset zeroes every pixel.
func (b *ImageBuffer) Reset() {
	*b = ImageBuffer{}
}

// Set stores v at (x, y); coordinates outside the buffer are ignored.
func (b *ImageBuffer) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= ImageW || y >= ImageH {
		return
	}
	b[y][x] = v
}

// At returns the pixel at (x, y), 0 outside the buffer.
func (b *ImageBuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= ImageW || y >= ImageH {
		return 0
	}
	return b[y][x]
}

