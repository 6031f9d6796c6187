package dsp

import (
	"errors"
	"fmt"
)

// ErrInvalidAudioInput indicates the waveform is empty or too short to
// produce any feature frames.
var ErrInvalidAudioInput = errors.New("invalid audio input")

// FeatureConfig contains acoustic feature extraction parameters.
type FeatureConfig struct {
	SampleRate   int // Hz, must be a multiple of 100
	WindowSize   int // context frames on each side of the center frame
	MelBands     int // mel filterbank size
	Coefficients int // cepstral coefficients kept per frame
	RMSFFTSize   int // FFT size of the spectrogram used for RMS energy
}

// Extractor converts a waveform into per-frame feature vectors for the frame
// classifier. Frames are produced at a fixed 100 frames/sec regardless of the
// sample rate; each feature vector is the flattened context window of MFCC+RMS
// columns concatenated with the flattened context window of their first- and
// second-order deltas.
type Extractor struct {
	cfg     FeatureConfig
	hop     int
	fftSize int
	filters [][]float64
}

// NewExtractor creates a feature extractor for the given configuration.
func NewExtractor(cfg FeatureConfig) (*Extractor, error) {
	if cfg.SampleRate < 8000 || cfg.SampleRate%100 != 0 {
		return nil, fmt.Errorf("sample rate must be a multiple of 100 and at least 8000 Hz, got %d", cfg.SampleRate)
	}

	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("window size must be at least 1 frame, got %d", cfg.WindowSize)
	}

	if cfg.MelBands < 1 || cfg.Coefficients < 1 || cfg.Coefficients > cfg.MelBands {
		return nil, fmt.Errorf("need 1 <= coefficients (%d) <= mel bands (%d)", cfg.Coefficients, cfg.MelBands)
	}

	if cfg.RMSFFTSize < 32 {
		return nil, fmt.Errorf("RMS FFT size must be at least 32 samples, got %d", cfg.RMSFFTSize)
	}

	fftSize := cfg.SampleRate / 40

	return &Extractor{
		cfg:     cfg,
		hop:     cfg.SampleRate / 100,
		fftSize: fftSize,
		filters: melFilterbank(cfg.MelBands, fftSize, cfg.SampleRate),
	}, nil
}

// NumFrames returns the number of feature frames produced for a waveform of
// the given sample count.
func (e *Extractor) NumFrames(numSamples int) int {
	return numFrames(numSamples, e.hop)
}

// FrameWidth returns the length of each feature vector.
func (e *Extractor) FrameWidth() int {
	base := e.cfg.Coefficients + 1 // MFCC columns plus RMS energy
	return 2 * e.cfg.WindowSize * (base + 2*base)
}

// Extract produces one feature vector per frame. The output row count equals
// NumFrames(len(samples)) exactly; context windows at the signal edges see
// zero rows rather than wrapped or truncated context.
func (e *Extractor) Extract(samples []float64) ([][]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty waveform", ErrInvalidAudioInput)
	}

	if len(samples) < e.fftSize {
		return nil, fmt.Errorf("%w: need at least %d samples for one analysis window, got %d",
			ErrInvalidAudioInput, e.fftSize, len(samples))
	}

	frames := e.NumFrames(len(samples))
	if frames <= 0 {
		return nil, fmt.Errorf("%w: waveform produces no frames", ErrInvalidAudioInput)
	}

	// cepstral coefficients with RMS energy appended as the last column
	cepstral := stft(samples, e.fftSize, e.hop)
	rms := rmsEnergy(stft(samples, e.cfg.RMSFFTSize, e.hop))

	base := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		row := make([]float64, e.cfg.Coefficients+1)
		copy(row, mfccFrame(cepstral[t], e.filters, e.cfg.Coefficients))
		row[e.cfg.Coefficients] = rms[t]
		base[t] = row
	}

	// first- and second-order deltas, concatenated column-wise
	d1 := delta(base)
	d2 := delta(d1)
	deltas := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		row := make([]float64, 0, 2*len(d1[t]))
		row = append(row, d1[t]...)
		row = append(row, d2[t]...)
		deltas[t] = row
	}

	paddedBase := zeroPad(base, e.cfg.WindowSize)
	paddedDeltas := zeroPad(deltas, e.cfg.WindowSize)

	w := e.cfg.WindowSize
	out := make([][]float64, frames)
	for i := 0; i < frames; i++ {
		vec := make([]float64, 0, e.FrameWidth())
		for _, row := range paddedBase[i : i+2*w] {
			vec = append(vec, row...)
		}
		for _, row := range paddedDeltas[i : i+2*w] {
			vec = append(vec, row...)
		}
		out[i] = vec
	}

	return out, nil
}

// zeroPad prepends and appends pad all-zero rows to a feature matrix.
func zeroPad(features [][]float64, pad int) [][]float64 {
	if len(features) == 0 {
		return features
	}
	width := len(features[0])

	out := make([][]float64, 0, len(features)+2*pad)
	for i := 0; i < pad; i++ {
		out = append(out, make([]float64, width))
	}
	out = append(out, features...)
	for i := 0; i < pad; i++ {
		out = append(out, make([]float64, width))
	}
	return out
}
