package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/findaid/internal/config"
	domfa "github.com/kailas-cloud/findaid/internal/domain/findingaid"
	"github.com/kailas-cloud/findaid/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/findaid/internal/logger"
	"github.com/kailas-cloud/findaid/internal/metrics"
	chiTransport "github.com/kailas-cloud/findaid/internal/transport/chi"
	"github.com/kailas-cloud/findaid/internal/transport/solr"
	findingaiduc "github.com/kailas-cloud/findaid/internal/usecase/findingaid"
	healthuc "github.com/kailas-cloud/findaid/internal/usecase/health"
	searchuc "github.com/kailas-cloud/findaid/internal/usecase/search"
	"github.com/kailas-cloud/findaid/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting findaid API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("solr_url", cfg.Solr.URL),
		zap.String("solr_collection", cfg.Solr.Collection),
	)

	metrics.RegisterPipelineMetrics()

	parser, err := domfa.NewParser(domfa.WithNamespace(cfg.Parser.Namespace))
	if err != nil {
		logger.Fatal("Failed to create parser", zap.Error(err))
	}
	compiler := query.NewCompiler(query.WithMaxRows(cfg.Search.MaxRows))

	engine := solr.NewClient(solr.Config{
		BaseURL:    cfg.Solr.URL,
		Collection: cfg.Solr.Collection,
		Timeout:    time.Duration(cfg.Solr.TimeoutSec) * time.Second,
		Logger:     logger.Named("solr"),
	})

	// Solr being down is not fatal: parsing still works and /health reports it.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := engine.Ping(pingCtx); err != nil {
		logger.Warn("Search engine not reachable at startup", zap.Error(err))
	} else {
		logger.Info("Connected to search engine")
	}
	pingCancel()

	// Create use case services
	ingestSvc := findingaiduc.New(parser, cfg.Parser.MaxDocumentBytes)
	searchSvc := searchuc.New(engine, compiler, searchuc.Config{
		ContentKind: cfg.Search.ContentKind,
		DisplayBase: cfg.Search.DisplayBase,
		XMLBase:     cfg.Search.XMLBase,
	})
	healthSvc := healthuc.New(engine)

	server := chiTransport.NewServer(ingestSvc, searchSvc, healthSvc, logger)
	handler := server.Router(chiTransport.RouterOptions{CORSOrigins: cfg.HTTP.CORSOrigins})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
