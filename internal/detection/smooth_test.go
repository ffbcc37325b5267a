package detection

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskFromRows builds a mask from rows of '.' (0) and 'X' (1).
func maskFromRows(rows ...string) Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == 'X' {
				m.Set(x, y, 1)
			}
		}
	}
	return m
}

// rows renders a mask in the maskFromRows notation.
func rows(m Mask) []string {
	out := make([]string, m.Height)
	for y := 0; y < m.Height; y++ {
		var sb strings.Builder
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) == 1 {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		out[y] = sb.String()
	}
	return out
}

// naiveSmooth is a direct window-by-window rendition of Smooth, used as a
// reference for the summed-area implementation.
func naiveSmooth(m Mask, k int, threshold float64) Mask {
	out := NewMask(m.Width, m.Height)
	for x := 0; x+k <= m.Width; x++ {
		for y := 0; y+k <= m.Height; y++ {
			index := y*m.Width + x
			total := 0
			var indices []int
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					total += int(m.Bits[index+j*m.Width+i])
					indices = append(indices, index+j*m.Width+i)
				}
			}
			if float64(total)/float64(k*k) >= threshold {
				for _, idx := range indices {
					out.Bits[idx] = 1
				}
			}
		}
	}
	return out
}

func TestSmooth_GrowsDenseBlock(t *testing.T) {
	in := maskFromRows(
		"....",
		".XX.",
		".XX.",
		"....",
	)

	got := Smooth(in, 2, 0.5)
	assert.Equal(t, []string{
		".XX.",
		"XXXX",
		"XXXX",
		".XX.",
	}, rows(got))
}

func TestSmooth_RemovesIsolatedPixels(t *testing.T) {
	in := maskFromRows(
		"X.....",
		"......",
		"...X..",
		"......",
		".....X",
	)

	got := Smooth(in, 2, 0.3)
	assert.Equal(t, 0, got.Count())
}

func TestSmooth_ThresholdZeroSetsEverything(t *testing.T) {
	for _, k := range []int{1, 2, 3, 4} {
		got := Smooth(NewMask(7, 5), k, 0)
		assert.Equal(t, 35, got.Count(), "kernel %d", k)
	}
}

func TestSmooth_EmptyMaskStaysEmpty(t *testing.T) {
	for _, threshold := range []float64{0.01, 0.3, 0.5, 1} {
		got := Smooth(NewMask(10, 8), 4, threshold)
		assert.Equal(t, 0, got.Count(), "threshold %v", threshold)
	}
}

func TestSmooth_FullMaskCoversEdgeStrip(t *testing.T) {
	in := NewMask(5, 5)
	for i := range in.Bits {
		in.Bits[i] = 1
	}

	got := Smooth(in, 3, 1)
	assert.Equal(t, 25, got.Count(), "bottom/right strip is covered by the last windows")
}

func TestSmooth_EdgeStripNeedsOverlappingWindow(t *testing.T) {
	// The only set pixels are in the right-hand strip that no window starts in.
	in := maskFromRows(
		"....X",
		"....X",
		"....X",
		"....X",
	)

	assert.Equal(t, 0, Smooth(in, 2, 0.75).Count())
	assert.Equal(t, []string{
		"...XX",
		"...XX",
		"...XX",
		"...XX",
	}, rows(Smooth(in, 2, 0.5)))
}

func TestSmooth_KernelLargerThanMask(t *testing.T) {
	in := maskFromRows("XXX", "XXX")
	assert.Equal(t, 0, Smooth(in, 3, 0).Count())
	assert.Equal(t, 6, Smooth(in, 2, 0).Count())
}

func TestSmooth_KernelOneIsIdentityAtPositiveThreshold(t *testing.T) {
	in := maskFromRows(
		"X..X",
		".X..",
		"..XX",
	)
	assert.Equal(t, in.Bits, Smooth(in, 1, 0.5).Bits)
}

func TestSmooth_DoesNotModifyInput(t *testing.T) {
	in := maskFromRows(".XX.", "X..X")
	before := append([]uint8(nil), in.Bits...)
	Smooth(in, 2, 0.25)
	assert.Equal(t, before, in.Bits)
}

func TestSmooth_InvalidKernelPanics(t *testing.T) {
	assert.Panics(t, func() { Smooth(NewMask(2, 2), 0, 0.5) })
	assert.Panics(t, func() { Smooth(NewMask(2, 2), -3, 0.5) })
}

func TestSmooth_MatchesNaive(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		w := 1 + rnd.Intn(24)
		h := 1 + rnd.Intn(24)
		k := 1 + rnd.Intn(6)
		threshold := []float64{0, 0.1, 0.25, 0.3, 0.5, 0.75, 1}[rnd.Intn(7)]
		density := rnd.Float64()

		in := NewMask(w, h)
		for i := range in.Bits {
			if rnd.Float64() < density {
				in.Bits[i] = 1
			}
		}

		got := Smooth(in, k, threshold)
		want := naiveSmooth(in, k, threshold)
		require.Equal(t, want.Bits, got.Bits, "trial %d: %dx%d k=%d threshold=%v", trial, w, h, k, threshold)
	}
}
