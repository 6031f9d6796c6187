package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Audio      AudioConfig      `yaml:"audio"`
	Features   FeatureConfig    `yaml:"features"`
	Smoothing  SmoothingConfig  `yaml:"smoothing"`
	Laughter   LaughterConfig   `yaml:"laughter"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Batch      BatchConfig      `yaml:"batch"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AudioConfig contains waveform loading parameters
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"` // Hz, all input is resampled to this rate
}

// FeatureConfig contains acoustic feature extraction parameters
type FeatureConfig struct {
	WindowSize   int `yaml:"window_size"`   // context frames on each side of the center frame
	MelBands     int `yaml:"mel_bands"`     // mel filterbank size
	Coefficients int `yaml:"coefficients"`  // cepstral coefficients kept per frame
	RMSFFTSize   int `yaml:"rms_fft_size"`  // FFT size of the spectrogram used for RMS energy
}

// SmoothingConfig contains probability smoothing filter parameters
type SmoothingConfig struct {
	FilterOrder int     `yaml:"filter_order"`
	Cutoff      float64 `yaml:"cutoff"` // normalized to Nyquist
}

// LaughterConfig contains instance segmentation parameters
type LaughterConfig struct {
	Threshold float64 `yaml:"threshold"`  // lower bound for laugh acceptance probability
	MinLength float64 `yaml:"min_length"` // lower bound for laugh run length
}

// ClassifierConfig contains frame classifier inference API configuration
type ClassifierConfig struct {
	Endpoint      string `yaml:"endpoint"`
	APIKey        string `yaml:"api_key"`
	Model         string `yaml:"model"`   // model identifier passed to the inference service
	Timeout       int    `yaml:"timeout"` // seconds
	MaxRetries    int    `yaml:"max_retries"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// BatchConfig contains multi-file processing configuration
type BatchConfig struct {
	Workers int `yaml:"workers"` // concurrent channel jobs
}

// HTTPConfig contains monitoring HTTP server configuration
type HTTPConfig struct {
	Port    int    `yaml:"port"`
	Address string `yaml:"address"`
	Enabled bool   `yaml:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate performs comprehensive validation of the configuration
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.Features.Validate(); err != nil {
		return fmt.Errorf("features config: %w", err)
	}

	if err := c.Smoothing.Validate(); err != nil {
		return fmt.Errorf("smoothing config: %w", err)
	}

	if err := c.Laughter.Validate(); err != nil {
		return fmt.Errorf("laughter config: %w", err)
	}

	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("classifier config: %w", err)
	}

	if err := c.Batch.Validate(); err != nil {
		return fmt.Errorf("batch config: %w", err)
	}

	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates audio configuration
func (a *AudioConfig) Validate() error {
	if a.SampleRate < 8000 {
		return fmt.Errorf("sample_rate must be at least 8000 Hz, got %d", a.SampleRate)
	}

	// hop length is sample_rate/100 and must divide evenly to keep 100 frames/sec exact
	if a.SampleRate%100 != 0 {
		return fmt.Errorf("sample_rate must be a multiple of 100, got %d", a.SampleRate)
	}

	return nil
}

// Validate validates feature extraction configuration
func (f *FeatureConfig) Validate() error {
	if f.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1 frame, got %d", f.WindowSize)
	}

	if f.MelBands < 1 {
		return fmt.Errorf("mel_bands must be at least 1, got %d", f.MelBands)
	}

	if f.Coefficients < 1 || f.Coefficients > f.MelBands {
		return fmt.Errorf("coefficients must be between 1 and mel_bands (%d), got %d", f.MelBands, f.Coefficients)
	}

	if f.RMSFFTSize < 32 {
		return fmt.Errorf("rms_fft_size must be at least 32 samples, got %d", f.RMSFFTSize)
	}

	return nil
}

// Validate validates smoothing filter configuration
func (s *SmoothingConfig) Validate() error {
	if s.FilterOrder < 1 || s.FilterOrder > 8 {
		return fmt.Errorf("filter_order must be between 1 and 8, got %d", s.FilterOrder)
	}

	if s.Cutoff <= 0 || s.Cutoff >= 1 {
		return fmt.Errorf("cutoff must be between 0 and 1 (exclusive), got %f", s.Cutoff)
	}

	return nil
}

// Validate validates laughter segmentation configuration
func (l *LaughterConfig) Validate() error {
	if l.Threshold < 0 || l.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %f", l.Threshold)
	}

	if l.MinLength < 0 {
		return fmt.Errorf("min_length cannot be negative, got %f", l.MinLength)
	}

	return nil
}

// Validate validates classifier configuration
func (c *ClassifierConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}

	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second, got %d", c.Timeout)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative, got %d", c.MaxRetries)
	}

	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1, got %d", c.MaxConcurrent)
	}

	return nil
}

// Validate validates batch processing configuration
func (b *BatchConfig) Validate() error {
	if b.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", b.Workers)
	}

	return nil
}

// Validate validates HTTP configuration
func (h *HTTPConfig) Validate() error {
	if h.Enabled {
		if h.Port < 1 || h.Port > 65535 {
			return fmt.Errorf("http port must be between 1 and 65535, got %d", h.Port)
		}

		if h.Address == "" {
			return fmt.Errorf("http address cannot be empty when HTTP is enabled")
		}
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// HopLength returns the number of samples between successive feature frames
// (fixed 100 frames/sec contract).
func (a *AudioConfig) HopLength() int {
	return a.SampleRate / 100
}

// MFCCFFTSize returns the FFT window size used for the cepstral transform.
func (a *AudioConfig) MFCCFFTSize() int {
	return a.SampleRate / 40
}

// GetTimeoutDuration returns the classifier timeout as a time.Duration
func (c *ClassifierConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
