// Command server serves the EMI schedule API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/emi-schedule-go/internal/cache"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/cloud-ru/emi-schedule-go/internal/logging"
	"github.com/cloud-ru/emi-schedule-go/internal/server"
	"github.com/cloud-ru/emi-schedule-go/internal/tracing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(serve())
}

// serve returns the process exit code; deferred cleanup runs before it returns
func serve() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration\", \"error\": %q}\n", err.Error())
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Amounts are emitted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, logger, cfg.OTELServiceName, cfg.OTELEndpoint, cfg.OTELSampleRatio)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.String("op", "main"), zap.Error(err))
		}
	}()

	results, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      server.New(cfg, logger, tracer, results),
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("addr", cfg.AppAddr),
			zap.String("cache_backend", cfg.CacheBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", zap.String("op", "main"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited", zap.String("op", "main"))
	return nil
}

// newCache builds the idempotency cache selected by CACHE_BACKEND
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedis(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
	default:
		lru, err := cache.NewLRU(cfg.CacheSize)
		if err != nil {
			return nil, nil, err
		}
		return lru, func() {}, nil
	}
}
