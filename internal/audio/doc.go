// Package audio handles waveform loading for the analysis pipeline.
// It decodes PCM WAV files into float64 sample slices, down-mixes
// multi-channel audio to mono and resamples to the pipeline's contract rate.
package audio
