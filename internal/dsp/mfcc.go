package dsp

import "math"

const logFloor = 1e-10 // power floor before taking the log

// hzToMel converts a frequency in Hz to the mel scale.
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

// melToHz converts a mel value back to Hz.
func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// melFilterbank builds numBands triangular filters spanning 0 Hz to
// sampleRate/2, mapped onto fftSize/2+1 frequency bins.
func melFilterbank(numBands, fftSize, sampleRate int) [][]float64 {
	numBins := fftSize/2 + 1
	maxMel := hzToMel(float64(sampleRate) / 2)

	// band edges, equally spaced on the mel scale
	edges := make([]float64, numBands+2)
	for i := range edges {
		edges[i] = melToHz(maxMel * float64(i) / float64(numBands+1))
	}

	binHz := float64(sampleRate) / float64(fftSize)

	filters := make([][]float64, numBands)
	for m := 0; m < numBands; m++ {
		filters[m] = make([]float64, numBins)
		lower, center, upper := edges[m], edges[m+1], edges[m+2]
		for k := 0; k < numBins; k++ {
			freq := float64(k) * binHz
			switch {
			case freq <= lower || freq >= upper:
				// outside the triangle
			case freq <= center:
				filters[m][k] = (freq - lower) / (center - lower)
			default:
				filters[m][k] = (upper - freq) / (upper - center)
			}
		}
	}

	return filters
}

// mfccFrame converts one magnitude spectrum row into cepstral coefficients:
// mel filterbank energies over the power spectrum, log compression, then an
// orthonormal DCT-II keeping the first numCoeffs coefficients.
func mfccFrame(magnitudes []float64, filters [][]float64, numCoeffs int) []float64 {
	numBands := len(filters)

	logEnergies := make([]float64, numBands)
	for m, filter := range filters {
		var energy float64
		for k, w := range filter {
			if w == 0 {
				continue
			}
			energy += w * magnitudes[k] * magnitudes[k]
		}
		logEnergies[m] = 10 * math.Log10(math.Max(energy, logFloor))
	}

	coeffs := make([]float64, numCoeffs)
	for i := 0; i < numCoeffs; i++ {
		var sum float64
		for m := 0; m < numBands; m++ {
			sum += logEnergies[m] * math.Cos(math.Pi*float64(i)*(float64(m)+0.5)/float64(numBands))
		}
		scale := math.Sqrt(2 / float64(numBands))
		if i == 0 {
			scale = math.Sqrt(1 / float64(numBands))
		}
		coeffs[i] = scale * sum
	}

	return coeffs
}
