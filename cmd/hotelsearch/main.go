package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/config"
	logpkg "github.com/kailas-cloud/hotelsearch/internal/logger"
	"github.com/kailas-cloud/hotelsearch/internal/metrics"
	historyrepo "github.com/kailas-cloud/hotelsearch/internal/repository/history"
	chiTransport "github.com/kailas-cloud/hotelsearch/internal/transport/chi"
	openaiGen "github.com/kailas-cloud/hotelsearch/internal/transport/openai"
	analyticsuc "github.com/kailas-cloud/hotelsearch/internal/usecase/analytics"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/deepsearch"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/executor"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	suggestuc "github.com/kailas-cloud/hotelsearch/internal/usecase/suggest"
	"github.com/kailas-cloud/hotelsearch/internal/version"
)

// historyStore is the full surface required of a history driver.
type historyStore interface {
	deepsearch.HistoryWriter
	analyticsuc.HistoryReader
	healthuc.HistoryPinger
}

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

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

	logger.Info("Starting hotelsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("fallback_order", cfg.Search.FallbackOrder),
		zap.String("history_driver", cfg.History.Driver),
	)

	// Register LLM metrics explicitly (no init())
	metrics.RegisterLLMMetrics()

	// Build the provider fallback chain — composition root
	chain := make([]executor.Generator, 0, len(cfg.Search.FallbackOrder))
	checkers := make([]healthuc.ProviderChecker, 0, len(cfg.Search.FallbackOrder))
	for _, name := range cfg.Search.FallbackOrder {
		provCfg := cfg.Providers[name]
		gen := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:   provCfg.APIKey,
			BaseURL:  provCfg.BaseURL,
			Model:    provCfg.Model,
			Provider: name,
			Logger:   logger,
		})
		chain = append(chain, gen)
		checkers = append(checkers, gen)
		logger.Info("Provider configured",
			zap.String("provider", name),
			zap.String("model", provCfg.Model),
			zap.Bool("has_key", provCfg.APIKey != ""),
		)
	}

	// Create history store based on driver
	var store historyStore
	var historyPinger healthuc.HistoryPinger
	switch cfg.History.Driver {
	case "memory":
		store = historyrepo.NewMemoryStore(cfg.History.Capacity)
	case "redis":
		redisStore, err := historyrepo.NewRedisStore(historyrepo.RedisConfig{
			Addrs:    cfg.History.Addrs,
			Password: cfg.History.Password,
			Capacity: cfg.History.Capacity,
		})
		if err != nil {
			logger.Fatal("Failed to create history store", zap.Error(err))
		}
		defer redisStore.Close()

		ctx := context.Background()
		timeout := time.Duration(cfg.History.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, timeout); err != nil {
			logger.Fatal("History store not ready", zap.Error(err))
		}
		logger.Info("Connected to history store")

		store = redisStore
		historyPinger = redisStore
	default:
		logger.Fatal("Unknown history driver", zap.String("driver", cfg.History.Driver))
	}

	// Provider credential map for analytics
	providers := make(map[string]bool, len(cfg.Providers))
	for name, p := range cfg.Providers {
		providers[name] = p.APIKey != ""
	}

	// Create use case services
	exec := executor.New(chain, logger)
	searchSvc := deepsearch.New(exec, store, logger)
	suggestSvc := suggestuc.New(exec, logger)
	analyticsSvc := analyticsuc.New(store, providers, logger)
	healthSvc := healthuc.New(historyPinger, checkers...)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, suggestSvc, analyticsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware)
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
