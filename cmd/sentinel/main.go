package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/config"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/explain"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/inference"
	inputredis "github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/input/redis"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/logger"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/metrics"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/output/answerjson"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/output/verdicthttp"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/output/verdictjson"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/pipeline"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/risk"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/slots"
)

func findConfigFile(configArg string) string {
	if configArg != "" {
		path := configArg
		if _, err := os.Stat(path); err == nil {
			return path
		}
		log.Printf("Warning: config file not found at %s, trying default locations", path)
	}

	if _, err := os.Stat("sentinel.yml"); err == nil {
		return "sentinel.yml"
	}

	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		path := filepath.Join(exeDir, "sentinel.yml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "sentinel.yml"
}

func applyDefaults(cfg *config.Config) {
	if cfg.Sentinel.Input.Redis.Addr == "" {
		cfg.Sentinel.Input.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.Sentinel.Input.Redis.Key == "" {
		cfg.Sentinel.Input.Redis.Key = "app_snapshots"
	}
	if cfg.Sentinel.Input.Redis.BlockTimeout == 0 {
		cfg.Sentinel.Input.Redis.BlockTimeout = 5 * time.Second
	}

	if cfg.Sentinel.Pipeline.Workers <= 0 {
		cfg.Sentinel.Pipeline.Workers = 4
	}
	if cfg.Sentinel.Pipeline.BatchSize <= 0 {
		cfg.Sentinel.Pipeline.BatchSize = 100
	}
	if cfg.Sentinel.Pipeline.FlushInterval <= 0 {
		cfg.Sentinel.Pipeline.FlushInterval = 2 * time.Second
	}
	if cfg.Sentinel.Pipeline.DedupeSize <= 0 {
		cfg.Sentinel.Pipeline.DedupeSize = 4096
	}

	if cfg.Sentinel.Inference.Timeout <= 0 {
		cfg.Sentinel.Inference.Timeout = 20 * time.Second
	}
	if cfg.Sentinel.Inference.MaxTokens <= 0 {
		cfg.Sentinel.Inference.MaxTokens = 512
	}

	if cfg.Sentinel.Verdicts.Mode == "" {
		cfg.Sentinel.Verdicts.Mode = "file"
	}
	if cfg.Sentinel.Verdicts.File.Path == "" {
		cfg.Sentinel.Verdicts.File.Path = "output/verdicts.jsonl"
	}
	if cfg.Sentinel.Answers.Mode == "" {
		cfg.Sentinel.Answers.Mode = "file"
	}
	if cfg.Sentinel.Answers.File.Path == "" {
		cfg.Sentinel.Answers.File.Path = "output/answers.jsonl"
	}

	if cfg.Sentinel.Metrics.Addr == "" {
		cfg.Sentinel.Metrics.Addr = ":9464"
	}

	if cfg.Sentinel.Logging.Level == "" {
		cfg.Sentinel.Logging.Level = "info"
	}
}

func main() {
	configArg := ""
	if len(os.Args) > 1 {
		configArg = os.Args[1]
	}

	configPath := findConfigFile(configArg)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyDefaults(cfg)

	if err := logger.Init(cfg.Sentinel.Logging.Enabled, cfg.Sentinel.Logging.Level, cfg.Sentinel.Logging.File, cfg.Sentinel.Logging.Console); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Infof("Sentinel starting")
	logger.Infof("Config loaded from: %s", configPath)

	m := metrics.New()
	if cfg.Sentinel.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Infof("Metrics listening on %s", cfg.Sentinel.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Sentinel.Metrics.Addr, mux); err != nil {
				logger.Errorf("Metrics listener failed: %v", err)
			}
		}()
	}

	consumer, err := inputredis.NewConsumer(inputredis.Config{
		Addr:         cfg.Sentinel.Input.Redis.Addr,
		Password:     cfg.Sentinel.Input.Redis.Password,
		DB:           cfg.Sentinel.Input.Redis.DB,
		Key:          cfg.Sentinel.Input.Redis.Key,
		BlockTimeout: cfg.Sentinel.Input.Redis.BlockTimeout,
	})
	if err != nil {
		logger.Errorf("Failed to create Redis consumer: %v", err)
		log.Fatalf("Failed to create Redis consumer: %v", err)
	}

	var client inference.Client
	if cfg.Sentinel.Inference.URL != "" {
		httpClient, err := inference.NewHTTPClient(inference.Config{
			URL:     cfg.Sentinel.Inference.URL,
			Timeout: cfg.Sentinel.Inference.Timeout,
			Headers: cfg.Sentinel.Inference.Headers,
		})
		if err != nil {
			logger.Errorf("Failed to create inference client: %v", err)
			log.Fatalf("Failed to create inference client: %v", err)
		}
		client = httpClient
		logger.Infof("Generated explanations enabled (%s)", cfg.Sentinel.Inference.URL)
	} else {
		logger.Infof("No inference URL configured; answers rendered from templates")
	}

	slotMode := slots.Lenient
	if cfg.Sentinel.Inference.StrictMode {
		slotMode = slots.Strict
	}
	explainer := explain.New(explain.Config{
		Client:    client,
		Mode:      slotMode,
		MaxTokens: cfg.Sentinel.Inference.MaxTokens,
		Timeout:   cfg.Sentinel.Inference.Timeout,
	})

	var verdictWriter pipeline.VerdictWriter
	switch cfg.Sentinel.Verdicts.Mode {
	case "file":
		w, err := verdictjson.NewWriter(cfg.Sentinel.Verdicts.File.Path)
		if err != nil {
			logger.Errorf("Failed to create verdict file writer: %v", err)
			log.Fatalf("Failed to create verdict file writer: %v", err)
		}
		verdictWriter = w
		logger.Infof("Verdict output mode: file (%s)", cfg.Sentinel.Verdicts.File.Path)
	case "http":
		w, err := verdicthttp.NewWriter(verdicthttp.Config{
			URL:     cfg.Sentinel.Verdicts.HTTP.URL,
			Timeout: cfg.Sentinel.Verdicts.HTTP.Timeout,
			Headers: cfg.Sentinel.Verdicts.HTTP.Headers,
		})
		if err != nil {
			logger.Errorf("Failed to create verdict HTTP writer: %v", err)
			log.Fatalf("Failed to create verdict HTTP writer: %v", err)
		}
		verdictWriter = w
		logger.Infof("Verdict output mode: http (%s)", cfg.Sentinel.Verdicts.HTTP.URL)
	default:
		log.Fatalf("Unknown verdict output mode: %s", cfg.Sentinel.Verdicts.Mode)
	}

	answerWriter, err := answerjson.NewWriter(cfg.Sentinel.Answers.File.Path)
	if err != nil {
		logger.Errorf("Failed to create answer writer: %v", err)
		log.Fatalf("Failed to create answer writer: %v", err)
	}
	logger.Infof("Answer output mode: file (%s)", cfg.Sentinel.Answers.File.Path)

	pipe, err := pipeline.NewRedisSnapshotPipeline(pipeline.Config{
		Consumer:        consumer,
		Explainer:       explainer,
		VerdictWriter:   verdictWriter,
		AnswerWriter:    answerWriter,
		Metrics:         m,
		ProfileOverride: risk.Profile(cfg.Sentinel.Risk.ProfileOverride),
		DedupeSize:      cfg.Sentinel.Pipeline.DedupeSize,
		Workers:         cfg.Sentinel.Pipeline.Workers,
		BatchSize:       cfg.Sentinel.Pipeline.BatchSize,
		FlushInterval:   cfg.Sentinel.Pipeline.FlushInterval,
	})
	if err != nil {
		logger.Errorf("Failed to create pipeline: %v", err)
		log.Fatalf("Failed to create pipeline: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := pipe.Run(ctx); err != nil && err != context.Canceled {
			logger.Errorf("Pipeline error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Infof("Shutting down")
	cancel()
	time.Sleep(1 * time.Second)

	if err := pipe.Close(); err != nil {
		logger.Errorf("Error closing pipeline: %v", err)
	}

	logger.Infof("Sentinel stopped")
}
