package laughter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hilab/laugh-analysis/internal/audio"
	"github.com/hilab/laugh-analysis/internal/classifier"
	"github.com/hilab/laugh-analysis/internal/dsp"
	"github.com/hilab/laugh-analysis/internal/metrics"
)

// Config contains analysis pipeline parameters.
type Config struct {
	SampleRate   int
	WindowSize   int
	MelBands     int
	Coefficients int
	RMSFFTSize   int

	FilterOrder int
	Cutoff      float64

	Threshold float64
	MinLength float64
}

// Analyzer runs the laughter detection pipeline for a single audio channel:
// feature extraction, frame classification, probability smoothing and
// instance segmentation. An Analyzer is safe for concurrent use as long as
// the supplied classifier is.
type Analyzer struct {
	config     Config
	extractor  *dsp.Extractor
	classifier classifier.FrameClassifier
	filterB    []float64
	filterA    []float64
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewAnalyzer creates an analyzer. The metrics parameter may be nil when no
// registry is running.
func NewAnalyzer(cfg Config, clf classifier.FrameClassifier, logger *slog.Logger, m *metrics.Metrics) (*Analyzer, error) {
	if clf == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	extractor, err := dsp.NewExtractor(dsp.FeatureConfig{
		SampleRate:   cfg.SampleRate,
		WindowSize:   cfg.WindowSize,
		MelBands:     cfg.MelBands,
		Coefficients: cfg.Coefficients,
		RMSFFTSize:   cfg.RMSFFTSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feature extractor: %w", err)
	}

	b, a, err := dsp.Butterworth(cfg.FilterOrder, cfg.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to design smoothing filter: %w", err)
	}

	return &Analyzer{
		config:     cfg,
		extractor:  extractor,
		classifier: clf,
		filterB:    b,
		filterA:    a,
		logger:     logger,
		metrics:    m,
	}, nil
}

// Analyze runs the pipeline on a waveform already sampled at the configured
// rate and returns the detected laughter instances in chronological order.
func (a *Analyzer) Analyze(ctx context.Context, samples []float64) ([]Instance, error) {
	extractStart := time.Now()
	features, err := a.extractor.Extract(samples)
	if err != nil {
		return nil, fmt.Errorf("feature extraction failed: %w", err)
	}
	if a.metrics != nil {
		a.metrics.RecordFramesExtracted(len(features), time.Since(extractStart).Seconds())
	}

	a.logger.Debug("extracted features",
		"frames", len(features),
		"width", a.extractor.FrameWidth())

	inferStart := time.Now()
	probs, err := a.classifier.Predict(ctx, features)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordInferenceFailure()
		}
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if a.metrics != nil {
		a.metrics.RecordInferenceRequest(time.Since(inferStart).Seconds())
	}

	smoothed, err := dsp.FiltFilt(a.filterB, a.filterA, probs)
	if err != nil {
		if !errors.Is(err, dsp.ErrSequenceTooShort) {
			return nil, fmt.Errorf("probability smoothing failed: %w", err)
		}
		// Too few frames to smooth; segment the raw probabilities instead.
		a.logger.Warn("probability sequence too short for smoothing, using raw probabilities",
			"frames", len(probs))
		if a.metrics != nil {
			a.metrics.RecordSmoothingSkipped()
		}
		smoothed = probs
	}

	instances := DetectInstances(smoothed, a.config.Threshold, a.config.MinLength)
	if a.metrics != nil {
		for _, inst := range instances {
			a.metrics.RecordInstance(inst.Duration())
		}
	}

	return instances, nil
}

// AnalyzeFile loads a WAV file, resamples it to the configured rate and runs
// Analyze on it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) ([]Instance, error) {
	start := time.Now()

	waveform, err := audio.LoadWaveform(path, a.config.SampleRate)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordFileFailure()
		}
		return nil, err
	}

	a.logger.Info("loaded audio file",
		"path", path,
		"duration_sec", waveform.Duration(),
		"sample_rate", waveform.SampleRate)

	instances, err := a.Analyze(ctx, waveform.Samples)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordFileFailure()
		}
		return nil, fmt.Errorf("analysis of %s failed: %w", path, err)
	}

	if a.metrics != nil {
		a.metrics.RecordFileProcessed(time.Since(start).Seconds(), waveform.Duration())
	}

	a.logger.Info("analysis complete",
		"path", path,
		"instances", len(instances),
		"elapsed", time.Since(start))

	return instances, nil
}
