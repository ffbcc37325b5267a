package detection

import "fmt"

// Smooth runs a block-threshold majority filter over m.
//
// A kernelSize×kernelSize window is placed at every position where it fits
// entirely inside the mask. When at least threshold (a fraction of
// kernelSize²) of the cells under a window are set in m, every cell the window
// covers is set in the result. Cells no qualifying window touches stay 0.
//
// This behaves like a dilation gated by local density: isolated outliers
// vanish, and a dense cluster grows to the full extent of every window that
// sees it. Windows are judged against the input only, so the order they are
// visited in does not matter. Pixels in the last kernelSize-1 rows and columns
// are never a window's top-left and are set only through an overlapping window.
//
// With threshold <= 0 every window qualifies and the whole frame is set. A
// kernel larger than the mask yields an all-zero result. Smooth panics if
// kernelSize < 1.
func Smooth(m Mask, kernelSize int, threshold float64) Mask {
	if kernelSize < 1 {
		panic(fmt.Sprintf("detection: kernel size %d must be positive", kernelSize))
	}

	w, h, k := m.Width, m.Height, kernelSize
	out := NewMask(w, h)
	if k > w || k > h {
		return out
	}

	// Summed-area table of the input, (w+1)×(h+1).
	stride := w + 1
	sum := make([]int, stride*(h+1))
	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			row += int(m.Bits[y*w+x])
			sum[(y+1)*stride+x+1] = sum[y*stride+x+1] + row
		}
	}

	// Qualifying windows are recorded as 2-D difference marks; a prefix sum
	// afterwards tells how many windows cover each cell.
	marks := make([]int, stride*(h+1))
	area := float64(k * k)
	for y := 0; y+k <= h; y++ {
		for x := 0; x+k <= w; x++ {
			total := sum[(y+k)*stride+x+k] - sum[y*stride+x+k] - sum[(y+k)*stride+x] + sum[y*stride+x]
			if !(float64(total)/area >= threshold) {
				continue
			}
			marks[y*stride+x]++
			marks[y*stride+x+k]--
			marks[(y+k)*stride+x]--
			marks[(y+k)*stride+x+k]++
		}
	}

	cover := make([]int, stride*(h+1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := marks[y*stride+x]
			if x > 0 {
				c += cover[y*stride+x-1]
			}
			if y > 0 {
				c += cover[(y-1)*stride+x]
			}
			if x > 0 && y > 0 {
				c -= cover[(y-1)*stride+x-1]
			}
			cover[y*stride+x] = c
			if c > 0 {
				out.Bits[y*w+x] = 1
			}
		}
	}

	return out
}
