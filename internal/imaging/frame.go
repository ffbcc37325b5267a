package imaging

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// BytesPerPixel is the number of channels stored per pixel in a Frame.
const BytesPerPixel = 4

// Frame is a rectangular RGBA pixel buffer.
//
// Pixels are stored row-major from the top-left corner, four 8-bit channels
// per pixel in R, G, B, A order. Colors are not alpha-premultiplied, which
// matches what a browser canvas hands out and what image.NRGBA stores.
//
// A well-formed frame satisfies len(Pix) == Width*Height*4.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a zeroed (transparent black) frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// Validate reports whether the buffer length matches the frame dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil frame")
	}
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("negative frame dimensions %dx%d", f.Width, f.Height)
	}
	if want := f.Width * f.Height * BytesPerPixel; len(f.Pix) != want {
		return fmt.Errorf("frame buffer holds %d bytes, %dx%d needs %d", len(f.Pix), f.Width, f.Height, want)
	}
	return nil
}

// Len returns the number of pixels in the frame.
func (f *Frame) Len() int {
	return f.Width * f.Height
}

// Offset returns the index of the red channel of pixel (x, y) in Pix.
func (f *Frame) Offset(x, y int) int {
	return (y*f.Width + x) * BytesPerPixel
}

// At returns the RGBA components of pixel (x, y).
func (f *Frame) At(x, y int) RGBAColor {
	i := f.Offset(x, y)
	return RGBAColor{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Set stores the RGBA components of pixel (x, y).
func (f *Frame) Set(x, y int, c RGBAColor) {
	i := f.Offset(x, y)
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// Image returns the frame as an *image.NRGBA that shares no memory with f.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}

// FrameFromImage copies any image into a Frame.
//
// The image is normalized to non-premultiplied 8-bit RGBA with its origin moved
// to (0,0), whatever its source color model or bounds.
func FrameFromImage(img image.Image) *Frame {
	// imaging.Clone always returns a tightly packed NRGBA anchored at (0,0).
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	return &Frame{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    nrgba.Pix,
	}
}

// EncodePNG writes the frame to w as a PNG image.
func EncodePNG(w io.Writer, f *Frame) error {
	if err := imaging.Encode(w, f.Image(), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
