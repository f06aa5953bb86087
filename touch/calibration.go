package touch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrCalibration = errors.New("invalid touch calibration")

// Calibration maps raw panel readings to screen coordinates. The raw bounds
// are the readings measured at the edges of the sensitive area; ScaleX and
// ScaleY are the screen extents in the panel's own frame.
type Calibration struct {
	MinRawX uint16 `json:"min_raw_x"`
	MaxRawX uint16 `json:"max_raw_x"`
	MinRawY uint16 `json:"min_raw_y"`
	MaxRawY uint16 `json:"max_raw_y"`
	ScaleX  uint16 `json:"scale_x"`
	ScaleY  uint16 `json:"scale_y"`
}

// DefaultCalibration matches the 2.8" 240x320 panel mounted in landscape.
func DefaultCalibration() Calibration {
	return Calibration{
		MinRawX: 1500,
		MaxRawX: 31000,
		MinRawY: 3276,
		MaxRawY: 30110,
		ScaleX:  240,
		ScaleY:  320,
	}
}

// Validate rejects ranges that would make the mapping degenerate.
func (c Calibration) Validate() error {
	switch {
	case c.MinRawX >= c.MaxRawX:
		return fmt.Errorf("%w: x range %d..%d", ErrCalibration, c.MinRawX, c.MaxRawX)
	case c.MinRawY >= c.MaxRawY:
		return fmt.Errorf("%w: y range %d..%d", ErrCalibration, c.MinRawY, c.MaxRawY)
	case c.ScaleX == 0 || c.ScaleY == 0:
		return fmt.Errorf("%w: scale %dx%d", ErrCalibration, c.ScaleX, c.ScaleY)
	}
	return nil
}

// Map clamps a raw sample to the calibrated range and scales it to screen
// coordinates. The y axis of the panel runs opposite to the screen, so it
// is flipped last.
func (c Calibration) Map(rawX, rawY uint16) (x, y uint16) {
	x = scale(rawX, c.MinRawX, c.MaxRawX, c.ScaleX)
	y = scale(rawY, c.MinRawY, c.MaxRawY, c.ScaleY)
	return x, c.ScaleY - 1 - y
}

// Unmap returns a raw sample that maps back to (x, y).
func (c Calibration) Unmap(x, y uint16) (rawX, rawY uint16) {
	if x >= c.ScaleX {
		x = c.ScaleX - 1
	}
	if y >= c.ScaleY {
		y = c.ScaleY - 1
	}
	y = c.ScaleY - 1 - y
	return unscale(x, c.MinRawX, c.MaxRawX, c.ScaleX), unscale(y, c.MinRawY, c.MaxRawY, c.ScaleY)
}

// scale maps raw from [lo, hi] onto [0, n) with truncating division.
func scale(raw, lo, hi, n uint16) uint16 {
	if raw < lo {
		raw = lo
	}
	if raw > hi {
		raw = hi
	}
	v := uint32(raw-lo) * uint32(n) / uint32(hi-lo)
	if v >= uint32(n) {
		v = uint32(n) - 1
	}
	return uint16(v)
}

// unscale is the smallest raw value that scale maps to v.
func unscale(v, lo, hi, n uint16) uint16 {
	span := uint32(hi - lo)
	raw := (uint32(v)*span + uint32(n) - 1) / uint32(n)
	return lo + uint16(raw)
}

// LoadCalibration reads a JSON calibration and validates it.
func LoadCalibration(r io.Reader) (Calibration, error) {
	var c Calibration
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Calibration{}, fmt.Errorf("calibration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Calibration{}, err
	}
	return c, nil
}
