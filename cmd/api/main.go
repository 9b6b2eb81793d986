package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/showtrack/showtrack-go/internal/config"
	"github.com/showtrack/showtrack-go/internal/handler"
	"github.com/showtrack/showtrack-go/internal/logger"
	"github.com/showtrack/showtrack-go/internal/service"
	"github.com/showtrack/showtrack-go/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Env)
	if err != nil {
		slog.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(st.users)
	watchlistService := service.NewWatchlistService(st.watchlist)

	if cfg.ResetDB {
		n, err := authService.ResetUsers(ctx)
		if err != nil {
			slog.Error("resetting users failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("RESET_DB set, deleted all users", "count", n)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var h http.Handler = handler.NewRouter(handler.RouterConfig{
		Auth:           authService,
		Watchlist:      watchlistService,
		Logger:         log,
		Registry:       registry,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})
	if cfg.TracingEnabled() {
		h = telemetry.Wrap(h, cfg.ServiceName)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	if err := st.close(shutdownCtx); err != nil {
		slog.Error("closing store failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("flushing traces failed", "error", err)
	}

	slog.Info("server stopped")
}
