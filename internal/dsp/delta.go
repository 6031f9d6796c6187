package dsp

// deltaHalfWidth is the regression half-window for delta features
// (9-point window).
const deltaHalfWidth = 4

// delta computes the local regression estimate of the first derivative of a
// feature matrix along the frame axis. Edge frames are replicated so the
// output has the same shape as the input.
func delta(features [][]float64) [][]float64 {
	frames := len(features)
	if frames == 0 {
		return nil
	}
	width := len(features[0])

	var norm float64
	for n := 1; n <= deltaHalfWidth; n++ {
		norm += float64(n * n)
	}
	norm *= 2

	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= frames {
			return frames - 1
		}
		return i
	}

	out := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		row := make([]float64, width)
		for n := 1; n <= deltaHalfWidth; n++ {
			ahead := features[clampIdx(t+n)]
			behind := features[clampIdx(t-n)]
			for j := 0; j < width; j++ {
				row[j] += float64(n) * (ahead[j] - behind[j])
			}
		}
		for j := 0; j < width; j++ {
			row[j] /= norm
		}
		out[t] = row
	}

	return out
}
