package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/store/memory"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/store/mysql"
	"github.com/baditaflorin/go_issue_similarity/internal/config"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"github.com/baditaflorin/go_issue_similarity/internal/service"
	"github.com/baditaflorin/go_issue_similarity/pkg/duplicates"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", cfg.MaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", cfg.Concurrency, "Maximum number of concurrent requests (0 = fasthttp default)")
	warmUp := flag.Bool("warm-up", cfg.WarmUp, "Perform engine warm-up on startup")
	logFile := flag.String("log-file", cfg.LogFile, "Log file path (empty = stdout)")
	flag.Parse()
	cfg.WarmUp = *warmUp

	log, err := createLogger(*logFile, cfg.JSONLogs())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting issue similarity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	source, closeSource, err := openSource(cfg, log)
	if err != nil {
		log.Error("Failed to open candidate source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	a, err := buildApp(cfg, source, log)
	if err != nil {
		log.Error("Failed to initialize engines", "error", err)
		os.Exit(1)
	}

	server := &fasthttp.Server{
		Handler:               a.requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", *port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// engineOptions translates configuration into engine options.
func engineOptions(cfg *config.Config, log ports.Logger) ([]duplicates.Option, error) {
	normType, err := normalizer.ParseType(cfg.Normalizer)
	if err != nil {
		return nil, err
	}
	return []duplicates.Option{
		duplicates.WithPortsLogger(log),
		duplicates.WithNormalizer(normalizer.NewNormalizerFactory().CreateNormalizer(normType)),
		duplicates.WithWeights(cfg.WordWeight, cfg.EditWeight),
		duplicates.WithLogFloor(cfg.LogFloor),
		duplicates.WithDuplicateThreshold(cfg.DuplicateThreshold),
		duplicates.WithSuggestionThreshold(cfg.SuggestionThreshold),
		duplicates.WithMaxResults(cfg.MaxResults),
	}, nil
}

// buildApp creates the engines and the issue service behind the handlers.
func buildApp(cfg *config.Config, source ports.CandidateSource, log ports.Logger) (*app, error) {
	opts, err := engineOptions(cfg, log)
	if err != nil {
		return nil, err
	}

	generic, err := duplicates.New[json.RawMessage](opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	issueEngine, err := duplicates.New[domain.Issue](append(opts, duplicates.WithWarmUp(cfg.WarmUp))...)
	if err != nil {
		return nil, fmt.Errorf("create issue engine: %w", err)
	}

	svc := service.New(issueEngine, source, log, service.Policy{
		MinSuggestLength: cfg.MinSuggestLength,
		MinCheckLength:   cfg.MinCheckLength,
		CorpusLimit:      cfg.CorpusLimit,
	})

	log.Info("Engines initialized",
		"normalizer", cfg.Normalizer,
		"word_weight", cfg.WordWeight,
		"edit_weight", cfg.EditWeight,
		"duplicate_threshold", cfg.DuplicateThreshold,
		"suggestion_threshold", cfg.SuggestionThreshold,
		"warm_up", cfg.WarmUp,
		"cpus", runtime.NumCPU(),
	)
	return newApp(generic, svc, log), nil
}

// openSource connects to MySQL when a DSN is configured and falls back to
// an in-memory source, optionally seeded from fixtures.
func openSource(cfg *config.Config, log ports.Logger) (ports.CandidateSource, func(), error) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		store, err := mysql.Open(ctx, cfg.DatabaseURL, mysql.DefaultOptions())
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using MySQL candidate source")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("Error closing database", "error", err)
			}
		}, nil
	}

	store := memory.New()
	if cfg.FixturesFile != "" {
		if err := store.LoadYAMLFile(cfg.FixturesFile); err != nil {
			return nil, nil, err
		}
	}
	log.Warn("No DATABASE_URL configured, using in-memory candidate source", "issues", store.Len())
	return store, func() {}, nil
}

// createLogger creates and configures a logger
func createLogger(logFile string, jsonFormat bool) (ports.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	log, err := logger.NewCustomStdLogger(logger.DefaultConfig(output, jsonFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
