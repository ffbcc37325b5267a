package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Cyan is the default highlight color for masked pixels.
var Cyan = RGBColor{R: 0, G: 255, B: 255}

// Hex returns the color in "#RRGGBB" form.
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSL represents a color in HSL (Hue, Saturation, Luminance) color space.
//
// Unlike RGB, the components are continuous:
//   - H is the hue angle in degrees, in [0, 360) (0=red, 120=green, 240=blue)
//   - S is the saturation as a fraction, in [0, 1] (0=gray, 1=vivid)
//   - L is the luminance as a fraction, in [0, 1] (0=black, 0.5=normal, 1=white)
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSL       `json:"hsl"`  // HSL representation
}

// NewColorResult builds a ColorResult from 8-bit RGBA components.
func NewColorResult(r, g, b, a uint8) *ColorResult {
	rgb := RGBColor{R: r, G: g, B: b}
	return &ColorResult{
		Hex:  rgb.Hex(),
		RGB:  rgb,
		RGBA: RGBAColor{R: r, G: g, B: b, A: a},
		HSL:  RGBToHSL(r, g, b),
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// The function reads the native color from the image and converts it to 8-bit
// components. For 16-bit images, values are scaled down by right-shifting 8 bits.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	return NewColorResult(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)), nil
}

// ParseHexColor parses a "#RRGGBB" or "#RGB" color string.
//
// The leading '#' is optional. Parsing is delegated to go-colorful, which also
// accepts the three-digit shorthand.
func ParseHexColor(hex string) (RGBColor, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return RGBColor{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return RGBColor{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// RGBToHSL converts 8-bit RGB values to HSL color space.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Calculate Luminance as (max + min) / 2
//  4. Calculate Saturation based on luminance
//  5. Calculate Hue based on which component is max
//
// Achromatic input (max == min: black, white and every gray) has no defined
// hue and a zero chroma denominator; it is reported as H=0, S=0. The result
// never contains NaN.
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}

	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: l}
	}

	delta := max - min

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - max - min)
	} else {
		s = delta / (max + min)
	}

	// Red wins ties, then green.
	var h float64
	switch max {
	case rf:
		h = (gf - bf) / delta
	case gf:
		h = 2.0 + (bf-rf)/delta
	default:
		h = 4.0 + (rf-gf)/delta
	}
	h *= 60

	if h < 0 {
		h += 360
	}

	return HSL{H: h, S: s, L: l}
}
