package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRGBToHSL_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSL
	}{
		{"white", 255, 255, 255, HSL{H: 0, S: 0, L: 1}},
		{"black", 0, 0, 0, HSL{H: 0, S: 0, L: 0}},
		{"pure red", 255, 0, 0, HSL{H: 0, S: 1, L: 0.5}},
		{"pure green", 0, 255, 0, HSL{H: 120, S: 1, L: 0.5}},
		{"pure blue", 0, 0, 255, HSL{H: 240, S: 1, L: 0.5}},
		{"yellow", 255, 255, 0, HSL{H: 60, S: 1, L: 0.5}},
		{"cyan", 0, 255, 255, HSL{H: 180, S: 1, L: 0.5}},
		{"magenta", 255, 0, 255, HSL{H: 300, S: 1, L: 0.5}},
		{"rose wraps below zero", 255, 0, 128, HSL{H: 329.88, S: 1, L: 0.5}},
		{"light pink uses high-luminance branch", 255, 200, 200, HSL{H: 0, S: 1, L: 0.8922}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.want.H, got.H, 0.01, "hue")
			assert.InDelta(t, tt.want.S, got.S, 0.001, "saturation")
			assert.InDelta(t, tt.want.L, got.L, 0.001, "luminance")
		})
	}
}

func TestRGBToHSL_Achromatic(t *testing.T) {
	for v := 0; v <= 255; v++ {
		got := RGBToHSL(uint8(v), uint8(v), uint8(v))
		require.Equal(t, 0.0, got.S, "gray %d saturation", v)
		require.Equal(t, 0.0, got.H, "gray %d hue", v)
		require.InDelta(t, float64(v)/255, got.L, 1e-12, "gray %d luminance", v)
	}
}

func TestRGBToHSL_Bounds(t *testing.T) {
	// Every 3rd value per channel plus the extremes keeps this under a second.
	values := []int{255}
	for v := 0; v < 255; v += 3 {
		values = append(values, v)
	}

	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := RGBToHSL(uint8(r), uint8(g), uint8(b))
				if math.IsNaN(c.H) || math.IsNaN(c.S) || math.IsNaN(c.L) {
					t.Fatalf("NaN for (%d,%d,%d): %+v", r, g, b, c)
				}
				if c.H < 0 || c.H >= 360 {
					t.Fatalf("hue out of range for (%d,%d,%d): %v", r, g, b, c.H)
				}
				if c.S < 0 || c.S > 1 || c.L < 0 || c.L > 1 {
					t.Fatalf("s/l out of range for (%d,%d,%d): %+v", r, g, b, c)
				}
			}
		}
	}
}

func TestRGBToHSL_MatchesColorful(t *testing.T) {
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 51 {
				got := RGBToHSL(uint8(r), uint8(g), uint8(b))
				ref := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
				h, s, l := ref.Hsl()

				assert.InDelta(t, l, got.L, 1e-9, "luminance of (%d,%d,%d)", r, g, b)
				assert.InDelta(t, s, got.S, 1e-9, "saturation of (%d,%d,%d)", r, g, b)
				if s > 0 {
					assert.InDelta(t, h, got.H, 1e-6, "hue of (%d,%d,%d)", r, g, b)
				}
			}
		}
	}
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	require.NoError(t, err)

	assert.Equal(t, "#FF8040", result.Hex)
	assert.Equal(t, RGBColor{R: 255, G: 128, B: 64}, result.RGB)
	assert.Equal(t, RGBAColor{R: 255, G: 128, B: 64, A: 255}, result.RGBA)
	assert.InDelta(t, 20.10, result.HSL.H, 0.01)
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			assert.Error(t, err, "SampleColor should fail for out-of-bounds coordinates")
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"#00FFFF", Cyan, false},
		{"00ffff", Cyan, false},
		{"#f00", RGBColor{R: 255}, false},
		{" #102030 ", RGBColor{R: 0x10, G: 0x20, B: 0x30}, false},
		{"", RGBColor{}, true},
		{"#GG0000", RGBColor{}, true},
		{"#12345", RGBColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGBColor_Hex(t *testing.T) {
	assert.Equal(t, "#00FFFF", Cyan.Hex())
	assert.Equal(t, "#0A0B0C", RGBColor{R: 10, G: 11, B: 12}.Hex())
}
