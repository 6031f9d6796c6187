package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hilab/laugh-analysis/internal/classifier"
	"github.com/hilab/laugh-analysis/internal/config"
	"github.com/hilab/laugh-analysis/internal/laughter"
	"github.com/hilab/laugh-analysis/internal/metrics"
	"github.com/hilab/laugh-analysis/internal/server"
	"github.com/hilab/laugh-analysis/internal/transcript"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "laugh-analysis"
	serviceVersion    = "1.0.0"
)

// Job describes one audio channel to analyze: the recording, its existing
// transcript, and where to write the merged result.
type Job struct {
	Audio      string `json:"audio"`
	Transcript string `json:"transcript"`
	Output     string `json:"output"`
}

// batchState tracks batch progress for logging and the monitoring API.
type batchState struct {
	total     int64
	completed int64
	failed    int64
	instances int64
}

func (s *batchState) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"total_jobs":         atomic.LoadInt64(&s.total),
		"completed_jobs":     atomic.LoadInt64(&s.completed),
		"failed_jobs":        atomic.LoadInt64(&s.failed),
		"instances_detected": atomic.LoadInt64(&s.instances),
	}
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	manifestPath := flag.String("manifest", "", "Path to JSON manifest listing channel jobs")
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: laughanalyze -config <config.yaml> -manifest <manifest.json>")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	// Log service startup
	logger.Info("Service starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
		slog.String("manifest_path", *manifestPath),
	)

	// Log configuration summary (without sensitive data)
	logger.Info("Configuration loaded",
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Int("window_size", cfg.Features.WindowSize),
		slog.Int("filter_order", cfg.Smoothing.FilterOrder),
		slog.Float64("cutoff", cfg.Smoothing.Cutoff),
		slog.Float64("threshold", cfg.Laughter.Threshold),
		slog.String("classifier_endpoint", cfg.Classifier.Endpoint),
		slog.Int("workers", cfg.Batch.Workers),
		slog.String("log_level", cfg.Logging.Level),
	)

	jobs, err := loadManifest(*manifestPath)
	if err != nil {
		logger.Error("Failed to load manifest", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(jobs) == 0 {
		logger.Error("Manifest contains no jobs", slog.String("path", *manifestPath))
		os.Exit(1)
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()
	logger.Info("Prometheus metrics initialized")

	// Initialize inference client
	clf, err := classifier.NewClient(classifier.Config{
		Endpoint:      cfg.Classifier.Endpoint,
		APIKey:        cfg.Classifier.APIKey,
		Model:         cfg.Classifier.Model,
		Timeout:       cfg.Classifier.GetTimeoutDuration(),
		MaxRetries:    cfg.Classifier.MaxRetries,
		MaxConcurrent: cfg.Classifier.MaxConcurrent,
	})
	if err != nil {
		logger.Error("Failed to create inference client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer clf.Close()

	// Initialize the analysis pipeline; it is shared read-only by all workers
	analyzer, err := laughter.NewAnalyzer(laughter.Config{
		SampleRate:   cfg.Audio.SampleRate,
		WindowSize:   cfg.Features.WindowSize,
		MelBands:     cfg.Features.MelBands,
		Coefficients: cfg.Features.Coefficients,
		RMSFFTSize:   cfg.Features.RMSFFTSize,
		FilterOrder:  cfg.Smoothing.FilterOrder,
		Cutoff:       cfg.Smoothing.Cutoff,
		Threshold:    cfg.Laughter.Threshold,
		MinLength:    cfg.Laughter.MinLength,
	}, clf, logger, appMetrics)
	if err != nil {
		logger.Error("Failed to create analyzer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	state := &batchState{total: int64(len(jobs))}

	// Initialize HTTP API server (if enabled)
	var httpServer *server.HTTPServer
	if cfg.HTTP.Enabled {
		statsFn := func() map[string]interface{} {
			stats := state.snapshot()
			stats["classifier"] = clf.GetStats()
			return stats
		}
		httpServer = server.NewHTTPServer(cfg.HTTP, logger, cfg, statsFn, appMetrics)
		if err := httpServer.Start(); err != nil {
			logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("HTTP API server initialized",
			slog.String("address", fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port)),
		)
	}

	// Cancel in-flight work on shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	startTime := time.Now()
	runBatch(ctx, jobs, cfg.Batch.Workers, analyzer, logger, state)

	// Stop HTTP server after the batch completes
	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
		}
	}

	clfStats := clf.GetStats()
	logger.Info("Batch complete",
		slog.Int64("total_jobs", atomic.LoadInt64(&state.total)),
		slog.Int64("completed_jobs", atomic.LoadInt64(&state.completed)),
		slog.Int64("failed_jobs", atomic.LoadInt64(&state.failed)),
		slog.Int64("instances_detected", atomic.LoadInt64(&state.instances)),
		slog.Uint64("inference_requests", clfStats.TotalRequests),
		slog.Uint64("inference_retries", clfStats.TotalRetries),
		slog.Duration("elapsed", time.Since(startTime)),
	)

	if atomic.LoadInt64(&state.failed) > 0 {
		os.Exit(1)
	}
}

// runBatch processes jobs with a bounded worker pool. Jobs are independent
// of each other; each failure is logged and counted without stopping the
// rest of the batch.
func runBatch(ctx context.Context, jobs []Job, workers int, analyzer *laughter.Analyzer, logger *slog.Logger, state *batchState) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobChan := make(chan Job)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				if err := processJob(ctx, job, analyzer, state); err != nil {
					atomic.AddInt64(&state.failed, 1)
					logger.Error("Job failed",
						slog.String("audio", job.Audio),
						slog.String("error", err.Error()),
					)
					continue
				}
				atomic.AddInt64(&state.completed, 1)
			}
		}()
	}

	for _, job := range jobs {
		select {
		case jobChan <- job:
		case <-ctx.Done():
			// Remaining jobs count as failures so the exit code reflects
			// the interrupted batch.
			atomic.AddInt64(&state.failed, 1)
		}
	}
	close(jobChan)
	wg.Wait()
}

// processJob analyzes one audio channel and writes the merged transcript.
func processJob(ctx context.Context, job Job, analyzer *laughter.Analyzer, state *batchState) error {
	t, err := transcript.Load(job.Transcript)
	if err != nil {
		return err
	}

	instances, err := analyzer.AnalyzeFile(ctx, job.Audio)
	if err != nil {
		return err
	}
	atomic.AddInt64(&state.instances, int64(len(instances)))

	spans := make([]transcript.Span, len(instances))
	for i, inst := range instances {
		spans[i] = transcript.Span{Start: inst.Start, End: inst.End}
	}

	merged, err := transcript.MergeLaughter(t, spans)
	if err != nil {
		return err
	}

	return transcript.Save(job.Output, merged)
}

// loadManifest reads the JSON job list.
func loadManifest(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	for i, job := range jobs {
		if job.Audio == "" || job.Transcript == "" || job.Output == "" {
			return nil, fmt.Errorf("manifest job %d is missing a required field (audio, transcript, output)", i)
		}
	}

	return jobs, nil
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default fallback
	}

	// Configure handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug, // Add source info for debug level
	}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		// Default to text format
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
