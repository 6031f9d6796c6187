package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// stft computes a magnitude spectrogram with centered frames. Frame t covers
// samples around t*hop; samples outside the signal are taken as zero.
// The result has numFrames(len(samples), hop) rows of fftSize/2+1 bins.
func stft(samples []float64, fftSize, hop int) [][]float64 {
	frames := numFrames(len(samples), hop)
	window := hannWindow(fftSize)
	fft := fourier.NewFFT(fftSize)

	buf := make([]float64, fftSize)
	coeffs := make([]complex128, fftSize/2+1)

	out := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		center := t * hop
		start := center - fftSize/2
		for i := 0; i < fftSize; i++ {
			idx := start + i
			if idx < 0 || idx >= len(samples) {
				buf[i] = 0
				continue
			}
			buf[i] = samples[idx] * window[i]
		}

		coeffs = fft.Coefficients(coeffs, buf)

		row := make([]float64, len(coeffs))
		for k, c := range coeffs {
			row[k] = cmplx.Abs(c)
		}
		out[t] = row
	}

	return out
}

// numFrames returns the number of analysis frames for a signal of the given
// length with centered framing (one frame per hop plus the initial frame).
func numFrames(numSamples, hop int) int {
	if numSamples <= 0 || hop <= 0 {
		return 0
	}
	return 1 + numSamples/hop
}

// hannWindow returns a periodic Hann window of the given length.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// rmsEnergy computes per-frame root-mean-square energy from a magnitude
// spectrogram, averaging power across frequency bins.
func rmsEnergy(spectrogram [][]float64) []float64 {
	out := make([]float64, len(spectrogram))
	for t, row := range spectrogram {
		var sum float64
		for _, mag := range row {
			sum += mag * mag
		}
		if len(row) > 0 {
			out[t] = math.Sqrt(sum / float64(len(row)))
		}
	}
	return out
}
