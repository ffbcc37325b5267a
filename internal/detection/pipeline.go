package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// Default pipeline parameters.
const (
	DefaultKernelSize = 4
	DefaultThreshold  = 0.3
)

var (
	// ErrFrameSize is returned when a frame's buffer does not match its dimensions.
	ErrFrameSize = errors.New("malformed frame")

	// ErrKernelSize is returned for a non-positive smoothing kernel.
	ErrKernelSize = errors.New("kernel size must be positive")

	// ErrThreshold is returned for a smoothing threshold outside [0,1].
	ErrThreshold = errors.New("threshold must be within [0,1]")
)

// Pipeline highlights the pixels of a frame that fall inside an HSL range.
//
// Each run computes the range mask, smooths it with Smooth, and paints the
// smoothed region in the highlight color. A Pipeline holds only its fixed
// parameters; the range is passed in per run, so one Pipeline may be shared by
// concurrent callers.
type Pipeline struct {
	kernelSize int
	threshold  float64
	highlight  imaging.RGBColor
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithKernelSize sets the smoothing window edge length in pixels.
func WithKernelSize(k int) Option {
	return func(p *Pipeline) { p.kernelSize = k }
}

// WithThreshold sets the fraction of set cells a window needs to qualify.
func WithThreshold(t float64) Option {
	return func(p *Pipeline) { p.threshold = t }
}

// WithHighlight sets the overlay color.
func WithHighlight(c imaging.RGBColor) Option {
	return func(p *Pipeline) { p.highlight = c }
}

// NewPipeline creates a pipeline with kernel 4, threshold 0.3 and a cyan
// highlight, then applies opts.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		kernelSize: DefaultKernelSize,
		threshold:  DefaultThreshold,
		highlight:  imaging.Cyan,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.kernelSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrKernelSize, p.kernelSize)
	}
	if math.IsNaN(p.threshold) || p.threshold < 0 || p.threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, p.threshold)
	}
	return p, nil
}

// KernelSize returns the smoothing window size.
func (p *Pipeline) KernelSize() int { return p.kernelSize }

// Threshold returns the smoothing threshold.
func (p *Pipeline) Threshold() float64 { return p.threshold }

// Highlight returns the overlay color.
func (p *Pipeline) Highlight() imaging.RGBColor { return p.highlight }

// Result is the output of a single pipeline run.
type Result struct {
	// Frame is the composited output, same size as the input.
	Frame *imaging.Frame

	// Mask is the smoothed mask that was painted.
	Mask Mask
}

// Run processes one frame against a snapshot of the range and returns the
// composited frame. The input frame is left untouched.
func (p *Pipeline) Run(f *imaging.Frame, rng HSLRange) (*imaging.Frame, error) {
	res, err := p.RunWithMask(f, rng)
	if err != nil {
		return nil, err
	}
	return res.Frame, nil
}

// RunWithMask is Run that also returns the smoothed mask.
func (p *Pipeline) RunWithMask(f *imaging.Frame, rng HSLRange) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameSize, err)
	}

	mask := ComputeMask(f, rng)
	mask = Smooth(mask, p.kernelSize, p.threshold)

	return &Result{
		Frame: Composite(f, mask, p.highlight),
		Mask:  mask,
	}, nil
}
