package detection

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/hsl-camera/internal/imaging"
)

func TestNewPipeline_Defaults(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)
	assert.Equal(t, 4, p.KernelSize())
	assert.Equal(t, 0.3, p.Threshold())
	assert.Equal(t, imaging.Cyan, p.Highlight())
}

func TestNewPipeline_Options(t *testing.T) {
	red := imaging.RGBColor{R: 255}
	p, err := NewPipeline(WithKernelSize(2), WithThreshold(0.75), WithHighlight(red))
	require.NoError(t, err)
	assert.Equal(t, 2, p.KernelSize())
	assert.Equal(t, 0.75, p.Threshold())
	assert.Equal(t, red, p.Highlight())
}

func TestNewPipeline_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero kernel", WithKernelSize(0), ErrKernelSize},
		{"negative kernel", WithKernelSize(-1), ErrKernelSize},
		{"negative threshold", WithThreshold(-0.1), ErrThreshold},
		{"threshold above one", WithThreshold(1.5), ErrThreshold},
		{"NaN threshold", WithThreshold(math.NaN()), ErrThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.opt)
			assert.True(t, errors.Is(err, tt.want), "want %v, got %v", tt.want, err)
		})
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	// Four identical pixels of hue ≈ 210°, saturation ≈ 0.5, luminance 0.5.
	f := solidFrame(2, 2, steelBlue)
	rng := HSLRange{MinHue: 200, MaxHue: 220, MinSat: 0.3, MaxSat: 1.0, MinLum: 0, MaxLum: 1.0}

	p, err := NewPipeline(WithKernelSize(1), WithThreshold(0.5))
	require.NoError(t, err)

	res, err := p.RunWithMask(f, rng)
	require.NoError(t, err)

	assert.Equal(t, []uint8{1, 1, 1, 1}, res.Mask.Bits)
	assert.Equal(t, 1.0, res.Mask.Coverage())
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, imaging.RGBAColor{R: 0, G: 255, B: 255, A: 255}, res.Frame.At(x, y))
		}
	}
	assert.Equal(t, steelBlue, f.At(0, 0), "input frame must not change")
}

func TestPipeline_DefaultsHighlightRegion(t *testing.T) {
	// A 6×6 blue square on a black 12×12 background.
	f := solidFrame(12, 12, imaging.RGBAColor{A: 255})
	for y := 3; y < 9; y++ {
		for x := 3; x < 9; x++ {
			f.Set(x, y, steelBlue)
		}
	}

	p, err := NewPipeline()
	require.NoError(t, err)

	out, err := p.Run(f, DefaultHSLRange())
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, imaging.RGBAColor{G: 255, B: 255, A: 255}, out.At(5, 5), "square center is highlighted")
	assert.Equal(t, imaging.RGBAColor{A: 255}, out.At(0, 0), "far corner stays black")
	assert.Equal(t, imaging.RGBAColor{G: 255, B: 255, A: 255}, out.At(2, 5), "window growth reaches past the square edge")
}

func TestPipeline_MalformedFrame(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)

	_, err = p.Run(&imaging.Frame{Width: 4, Height: 4, Pix: make([]uint8, 10)}, DefaultHSLRange())
	assert.True(t, errors.Is(err, ErrFrameSize))

	_, err = p.Run(nil, DefaultHSLRange())
	assert.True(t, errors.Is(err, ErrFrameSize))
}

func TestPipeline_ConcurrentRuns(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)

	f := randomFrame(rand.New(rand.NewSource(9)), 40, 30)
	want, err := p.Run(f, DefaultHSLRange())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*imaging.Frame, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Run(f, DefaultHSLRange())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.NotNil(t, got, "run %d", i)
		assert.Equal(t, want.Pix, got.Pix, "run %d", i)
	}
}
