package detection

import (
	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// Mask is a dense per-pixel binary classification of a frame.
//
// Bits holds exactly Width*Height entries in raster order (index y*Width+x),
// each 0 or 1. A Mask is always fully populated; there is no "unset" state
// distinct from 0.
type Mask struct {
	Width  int
	Height int
	Bits   []uint8
}

// NewMask allocates an all-zero mask.
func NewMask(width, height int) Mask {
	return Mask{
		Width:  width,
		Height: height,
		Bits:   make([]uint8, width*height),
	}
}

// At returns the bit for pixel (x, y).
func (m Mask) At(x, y int) uint8 {
	return m.Bits[y*m.Width+x]
}

// Set stores v (0 or 1) for pixel (x, y).
func (m Mask) Set(x, y int, v uint8) {
	m.Bits[y*m.Width+x] = v & 1
}

// Count returns the number of set pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		n += int(b)
	}
	return n
}

// Coverage returns the fraction of set pixels, 0 for an empty mask.
func (m Mask) Coverage() float64 {
	if len(m.Bits) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Bits))
}

// ComputeMask classifies every pixel of f against rng.
//
// A pixel's bit is 1 when its HSL value (see imaging.RGBToHSL) lies inside rng;
// alpha is ignored. The frame is not modified.
func ComputeMask(f *imaging.Frame, rng HSLRange) Mask {
	m := NewMask(f.Width, f.Height)
	for i := range m.Bits {
		p := f.Pix[i*imaging.BytesPerPixel:]
		if rng.Contains(imaging.RGBToHSL(p[0], p[1], p[2])) {
			m.Bits[i] = 1
		}
	}
	return m
}
