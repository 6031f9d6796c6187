// Package laughter turns per-frame laughter probabilities into timestamped
// laughter instances and orchestrates the per-file analysis pipeline:
// waveform loading, feature extraction, classification, probability
// smoothing and instance segmentation.
package laughter
