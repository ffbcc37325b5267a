package detection

import (
	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// Composite returns a copy of f with every pixel whose mask bit is set painted
// in c.
//
// Only the red, green and blue channels of masked pixels change. Alpha is
// copied bit-for-bit and unmasked pixels are untouched. f itself is not
// modified.
func Composite(f *imaging.Frame, m Mask, c imaging.RGBColor) *imaging.Frame {
	out := f.Clone()
	for i, bit := range m.Bits {
		if bit != 1 {
			continue
		}
		p := out.Pix[i*imaging.BytesPerPixel:]
		p[0], p[1], p[2] = c.R, c.G, c.B
	}
	return out
}
