package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// ErrAudioLoad indicates the audio file could not be decoded into a waveform.
var ErrAudioLoad = errors.New("audio load failed")

// Waveform is a mono audio signal with its sample rate.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// LoadWaveform reads a PCM WAV file, down-mixes it to mono and resamples it
// to targetRate. The returned waveform always has SampleRate == targetRate.
func LoadWaveform(path string, targetRate int) (*Waveform, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("%w: target rate must be positive, got %d", ErrAudioLoad, targetRate)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioLoad, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", ErrAudioLoad, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: reading PCM buffer from %s: %v", ErrAudioLoad, path, err)
	}

	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s has no sample rate", ErrAudioLoad, path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %s has no channels", ErrAudioLoad, path)
	}

	// normalize integer PCM to [-1, 1)
	scale := 1.0
	if decoder.BitDepth > 0 {
		scale = 1.0 / float64(int64(1)<<(decoder.BitDepth-1))
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) * scale
	}

	samples = Resample(samples, buf.Format.SampleRate, targetRate)

	return &Waveform{Samples: samples, SampleRate: targetRate}, nil
}

// Resample converts a sample slice from srcRate to dstRate using linear
// interpolation. The input is returned unchanged when the rates match.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(math.Round(float64(len(samples)) / ratio))
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) * ratio
		left := int(pos)
		if left >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(left)
		out[i] = samples[left]*(1-frac) + samples[left+1]*frac
	}

	return out
}
