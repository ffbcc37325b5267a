package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// ErrInvalidRange is returned by HSLRange.Validate for out-of-bounds limits.
var ErrInvalidRange = errors.New("invalid HSL range")

// HSLRange is the acceptance window a pixel's HSL value must fall into to be
// highlighted.
//
// Hue bounds are in degrees [0, 360]; saturation and luminance bounds are
// fractions in [0, 1]. All bounds are inclusive.
//
// The hue window does not wrap around 0°: a range with MinHue > MaxHue (for
// example 350..10) accepts no hue at all.
type HSLRange struct {
	MinHue float64 `json:"min_hue" yaml:"min_hue"`
	MaxHue float64 `json:"max_hue" yaml:"max_hue"`
	MinSat float64 `json:"min_sat" yaml:"min_sat"`
	MaxSat float64 `json:"max_sat" yaml:"max_sat"`
	MinLum float64 `json:"min_lum" yaml:"min_lum"`
	MaxLum float64 `json:"max_lum" yaml:"max_lum"`
}

// DefaultHSLRange selects saturated blues (hue 200°..220°).
func DefaultHSLRange() HSLRange {
	return HSLRange{
		MinHue: 200,
		MaxHue: 220,
		MinSat: 0.3,
		MaxSat: 1.0,
		MinLum: 0,
		MaxLum: 1.0,
	}
}

// Contains reports whether c lies inside the window.
func (r HSLRange) Contains(c imaging.HSL) bool {
	if c.S < r.MinSat || c.S > r.MaxSat {
		return false
	}
	if c.L < r.MinLum || c.L > r.MaxLum {
		return false
	}
	// No wraparound: an inverted hue window matches nothing.
	if r.MinHue > r.MaxHue {
		return false
	}
	return r.MinHue <= c.H && c.H <= r.MaxHue
}

// Validate checks that every bound lies in its domain.
//
// An inverted pair (min > max) is not an error; it is a legal window that
// matches nothing.
func (r HSLRange) Validate() error {
	bounds := []struct {
		name  string
		value float64
		limit float64
	}{
		{"min_hue", r.MinHue, 360},
		{"max_hue", r.MaxHue, 360},
		{"min_sat", r.MinSat, 1},
		{"max_sat", r.MaxSat, 1},
		{"min_lum", r.MinLum, 1},
		{"max_lum", r.MaxLum, 1},
	}
	for _, b := range bounds {
		if math.IsNaN(b.value) || b.value < 0 || b.value > b.limit {
			return fmt.Errorf("%w: %s=%v outside [0,%v]", ErrInvalidRange, b.name, b.value, b.limit)
		}
	}
	return nil
}
