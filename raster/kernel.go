package raster

import (
	"math"
)

// OneHot converts per-band probability buffers into per-band one-hot uint8
// buffers. All input buffers must have equal length (one entry per pixel).
// NaN probabilities count as zero; ties go to the lowest band index, so every
// pixel ends up with exactly one band set.
func OneHot(bands [][]float32) [][]uint8 {
	if len(bands) == 0 {
		return nil
	}
	n := len(bands[0])
	out := make([][]uint8, len(bands))
	for b := range out {
		out[b] = make([]uint8, n)
	}
	for i := 0; i < n; i++ {
		best := 0
		bestVal := float32(math.Inf(-1))
		for b := range bands {
			v := bands[b][i]
			if math.IsNaN(float64(v)) {
				v = 0
			}
			if v > bestVal {
				bestVal = v
				best = b
			}
		}
		out[best][i] = 1
	}
	return out
}

// ClassPixels counts the set pixels of each one-hot band.
func ClassPixels(bands [][]uint8) []int {
	counts := make([]int, len(bands))
	for b, buf := range bands {
		for _, v := range buf {
			if v != 0 {
				counts[b]++
			}
		}
	}
	return counts
}

// ValidationReport summarizes a discrete-raster check.
type ValidationReport struct {
	// Width and Height of the raster grid.
	Width, Height int
	// ClassPixels is the per-band count of set pixels, aligned with ClassNames.
	ClassPixels []int
	// BadValues counts band entries outside {0, 1}.
	BadValues int
	// Violations counts pixels whose per-band sum is not exactly 1.
	Violations int
}

// Valid reports whether the raster satisfies the discrete invariants.
func (r *ValidationReport) Valid() bool {
	return r.BadValues == 0 && r.Violations == 0
}

// ClassShares returns the per-class pixel fraction of the grid.
func (r *ValidationReport) ClassShares() []float64 {
	total := r.Width * r.Height
	shares := make([]float64, len(r.ClassPixels))
	if total == 0 {
		return shares
	}
	for i, c := range r.ClassPixels {
		shares[i] = float64(c) / float64(total)
	}
	return shares
}

// CheckOneHot validates one-hot band buffers: every entry in {0, 1} and
// exactly one band set per pixel.
func CheckOneHot(bands [][]uint8, width, height int) *ValidationReport {
	report := &ValidationReport{
		Width:       width,
		Height:      height,
		ClassPixels: make([]int, len(bands)),
	}
	if len(bands) == 0 {
		return report
	}
	n := len(bands[0])
	for i := 0; i < n; i++ {
		sum := 0
		for b := range bands {
			v := bands[b][i]
			if v > 1 {
				report.BadValues++
				continue
			}
			if v == 1 {
				report.ClassPixels[b]++
				sum++
			}
		}
		if sum != 1 {
			report.Violations++
		}
	}
	return report
}

// MaskNoData replaces nodata entries with NaN in place and returns how many
// were replaced. NaN nodata matches nothing (NaN pixels are already masked).
func MaskNoData(buf []float32, nodata float64) int {
	if math.IsNaN(nodata) {
		return 0
	}
	nd := float32(nodata)
	replaced := 0
	for i, v := range buf {
		if v == nd {
			buf[i] = float32(math.NaN())
			replaced++
		}
	}
	return replaced
}

// BufferStats returns min, max and mean over the finite entries of buf, plus
// the NaN count. With no finite entries min and max are NaN.
func BufferStats(buf []float32) (min, max, mean float64, nanCount int) {
	min = math.NaN()
	max = math.NaN()
	var sum float64
	finite := 0
	for _, v := range buf {
		f := float64(v)
		if math.IsNaN(f) {
			nanCount++
			continue
		}
		if finite == 0 || f < min {
			min = f
		}
		if finite == 0 || f > max {
			max = f
		}
		sum += f
		finite++
	}
	if finite > 0 {
		mean = sum / float64(finite)
	}
	return min, max, mean, nanCount
}
