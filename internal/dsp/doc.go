// Package dsp implements the signal processing used by the laughter analysis
// pipeline: short-time Fourier analysis, mel-frequency cepstral features with
// RMS energy and delta features, and zero-phase Butterworth low-pass filtering
// of classifier probability sequences.
package dsp
