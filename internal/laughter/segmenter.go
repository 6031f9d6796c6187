package laughter

// framesPerSecond is the fixed analysis frame rate; frame indices divide by
// this to become timestamps.
const framesPerSecond = 100.0

// Instance is a contiguous time span classified as laughter, in seconds.
type Instance struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the instance length in seconds.
func (i Instance) Duration() float64 {
	return i.End - i.Start
}

// DetectInstances extracts laughter instances from a smoothed probability
// sequence. A run is every maximal stretch of frames whose probability is
// strictly above threshold; runs whose frame count is strictly greater than
// minLength survive. Endpoints are the first and last frame index of the run
// converted to seconds, so a single-frame run yields a zero-length instance.
func DetectInstances(probs []float64, threshold, minLength float64) []Instance {
	var instances []Instance
	runStart := -1

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		if float64(end-runStart) > minLength {
			instances = append(instances, Instance{
				Start: float64(runStart) / framesPerSecond,
				End:   float64(end-1) / framesPerSecond,
			})
		}
		runStart = -1
	}

	for i, p := range probs {
		if p > threshold {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(probs))

	return instances
}
