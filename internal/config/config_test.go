package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: 44100,
		},
		Features: FeatureConfig{
			WindowSize:   37,
			MelBands:     12,
			Coefficients: 12,
			RMSFFTSize:   2048,
		},
		Smoothing: SmoothingConfig{
			FilterOrder: 2,
			Cutoff:      0.01,
		},
		Laughter: LaughterConfig{
			Threshold: 0.5,
			MinLength: 0.2,
		},
		Classifier: ClassifierConfig{
			Endpoint:      "https://api.example.com/predict",
			APIKey:        "test-key",
			Model:         "laughter-v1",
			Timeout:       30,
			MaxRetries:    3,
			MaxConcurrent: 4,
		},
		Batch: BatchConfig{
			Workers: 2,
		},
		HTTP: HTTPConfig{
			Port:    8080,
			Address: "127.0.0.1",
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid configuration",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "sample rate not a multiple of 100",
			mutate:      func(c *Config) { c.Audio.SampleRate = 44150 },
			expectError: true,
			errorMsg:    "sample_rate must be a multiple of 100",
		},
		{
			name:        "sample rate too low",
			mutate:      func(c *Config) { c.Audio.SampleRate = 4000 },
			expectError: true,
			errorMsg:    "sample_rate must be at least 8000",
		},
		{
			name:        "zero window size",
			mutate:      func(c *Config) { c.Features.WindowSize = 0 },
			expectError: true,
			errorMsg:    "window_size must be at least 1",
		},
		{
			name:        "more coefficients than mel bands",
			mutate:      func(c *Config) { c.Features.Coefficients = 20 },
			expectError: true,
			errorMsg:    "coefficients must be between 1 and mel_bands",
		},
		{
			name:        "cutoff out of range",
			mutate:      func(c *Config) { c.Smoothing.Cutoff = 1.5 },
			expectError: true,
			errorMsg:    "cutoff must be between 0 and 1",
		},
		{
			name:        "threshold above one",
			mutate:      func(c *Config) { c.Laughter.Threshold = 1.5 },
			expectError: true,
			errorMsg:    "threshold must be between 0 and 1",
		},
		{
			name:        "negative min length",
			mutate:      func(c *Config) { c.Laughter.MinLength = -0.1 },
			expectError: true,
			errorMsg:    "min_length cannot be negative",
		},
		{
			name:        "empty classifier endpoint",
			mutate:      func(c *Config) { c.Classifier.Endpoint = "" },
			expectError: true,
			errorMsg:    "endpoint cannot be empty",
		},
		{
			name:        "zero batch workers",
			mutate:      func(c *Config) { c.Batch.Workers = 0 },
			expectError: true,
			errorMsg:    "workers must be at least 1",
		},
		{
			name:        "invalid http port when enabled",
			mutate:      func(c *Config) { c.HTTP.Port = 70000 },
			expectError: true,
			errorMsg:    "http port must be between 1 and 65535",
		},
		{
			name: "http disabled skips port validation",
			mutate: func(c *Config) {
				c.HTTP.Enabled = false
				c.HTTP.Port = 0
			},
			expectError: false,
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Logging.Level = "trace" },
			expectError: true,
			errorMsg:    "level must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfigLoad(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config file",
			configYAML: `
audio:
  sample_rate: 44100
features:
  window_size: 37
  mel_bands: 12
  coefficients: 12
  rms_fft_size: 2048
smoothing:
  filter_order: 2
  cutoff: 0.01
laughter:
  threshold: 0.5
  min_length: 0.2
classifier:
  endpoint: "https://api.example.com/predict"
  api_key: "test-key"
  model: "laughter-v1"
  timeout: 30
  max_retries: 3
  max_concurrent: 4
batch:
  workers: 2
http:
  port: 8080
  address: "127.0.0.1"
  enabled: false
logging:
  level: "info"
  format: "json"
  output: "stdout"
`,
			expectError: false,
		},
		{
			name: "invalid YAML syntax",
			configYAML: `
audio:
  sample_rate: not_a_number
`,
			expectError: true,
			errorMsg:    "failed to parse",
		},
		{
			name: "missing classifier endpoint",
			configYAML: `
audio:
  sample_rate: 44100
features:
  window_size: 37
  mel_bands: 12
  coefficients: 12
  rms_fft_size: 2048
smoothing:
  filter_order: 2
  cutoff: 0.01
laughter:
  threshold: 0.5
  min_length: 0.2
batch:
  workers: 2
logging:
  level: "info"
  format: "json"
  output: "stdout"
`,
			expectError: true,
			errorMsg:    "endpoint cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tempDir, "config.yaml")
			err := os.WriteFile(configPath, []byte(tt.configYAML), 0644)
			if err != nil {
				t.Fatalf("Failed to create test config file: %v", err)
			}

			config, err := Load(configPath)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				} else if config == nil {
					t.Errorf("Expected config to be loaded but got nil")
				}
			}
		})
	}
}

func TestConfigLoadNonexistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Errorf("Expected error for nonexistent file but got none")
	}
	if !contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected error about reading file, got: %v", err)
	}
}

func TestDerivedParameters(t *testing.T) {
	audio := AudioConfig{SampleRate: 44100}

	if audio.HopLength() != 441 {
		t.Errorf("Expected hop length 441, got %d", audio.HopLength())
	}

	if audio.MFCCFFTSize() != 1102 {
		t.Errorf("Expected FFT size 1102, got %d", audio.MFCCFFTSize())
	}

	classifier := ClassifierConfig{Timeout: 30}
	if classifier.GetTimeoutDuration() != 30*time.Second {
		t.Errorf("Expected 30 seconds, got %v", classifier.GetTimeoutDuration())
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > len(substr) && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
