// Package config provides configuration loading and validation for the laughter
// analysis service. It handles YAML-based configuration with per-section struct
// validation covering audio, feature extraction, smoothing, segmentation,
// classifier and logging parameters.
package config
