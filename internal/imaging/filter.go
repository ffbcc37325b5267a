package imaging

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/anthonynsimon/bild/adjust"
)

// Filter names accepted by ApplyFilter.
const (
	FilterNone  = "none"
	FilterGray  = "gray"
	FilterRed   = "red"
	FilterGreen = "green"
	FilterBlue  = "blue"
)

var channelFilters = map[string]func(color.RGBA) color.RGBA{
	FilterGray: func(c color.RGBA) color.RGBA {
		avg := uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
		return color.RGBA{R: avg, G: avg, B: avg, A: c.A}
	},
	FilterRed: func(c color.RGBA) color.RGBA {
		return color.RGBA{R: c.R, A: c.A}
	},
	FilterGreen: func(c color.RGBA) color.RGBA {
		return color.RGBA{G: c.G, A: c.A}
	},
	FilterBlue: func(c color.RGBA) color.RGBA {
		return color.RGBA{B: c.B, A: c.A}
	},
}

// FilterNames lists the names ApplyFilter understands, sorted.
func FilterNames() []string {
	names := []string{FilterNone}
	for name := range channelFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyFilter returns a copy of f with a per-pixel channel filter applied.
//
// Supported filters:
//   - "none": unchanged copy
//   - "gray": each of R, G and B replaced by their unweighted average
//   - "red", "green", "blue": keep only that channel, zero the other two
//
// Alpha is preserved by every filter. The input frame is never modified.
//
// Frames are expected to be opaque; bild works on premultiplied RGBA, so
// channel values of translucent pixels may shift by rounding.
func ApplyFilter(f *Frame, name string) (*Frame, error) {
	if name == "" || name == FilterNone {
		return f.Clone(), nil
	}

	fn, ok := channelFilters[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter: %s", name)
	}

	return FrameFromImage(adjust.Apply(f.Image(), fn)), nil
}
