package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/akobaz/libcoocvt/internal/api"
	"github.com/akobaz/libcoocvt/internal/auth"
	"github.com/akobaz/libcoocvt/internal/version"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("COOCVT_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	authCfg, err := loadAuthConfig(logger)
	if err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	srvCfg, err := loadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(addr, logger, authCfg, srvCfg)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", addr,
			"version", version.Version,
			"auth_enabled", authCfg.Enabled,
			"workers", srvCfg.Workers,
			"max_bodies", srvCfg.MaxBodies,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func loadAuthConfig(logger *slog.Logger) (auth.Config, error) {
	cfg := auth.Config{}

	enabledStr := os.Getenv("COOCVT_AUTH_ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, errors.New("COOCVT_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.Enabled = enabled
	}

	if cfg.Enabled {
		cfg.Token = os.Getenv("COOCVT_AUTH_TOKEN")
		if cfg.Token == "" {
			return cfg, errors.New("COOCVT_AUTH_TOKEN is required when auth is enabled")
		}
		logger.Info("auth enabled")
	}

	return cfg, nil
}

func loadServerConfig() (api.Config, error) {
	cfg := api.Config{
		MaxBodies:     10000,
		Workers:       runtime.NumCPU(),
		MaxConcurrent: 4,
	}

	if s := os.Getenv("COOCVT_MAX_BODIES"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return cfg, errors.New("COOCVT_MAX_BODIES must be a positive integer")
		}
		cfg.MaxBodies = n
	}

	if s := os.Getenv("COOCVT_WORKERS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return cfg, errors.New("COOCVT_WORKERS must be a positive integer")
		}
		cfg.Workers = n
	}

	if s := os.Getenv("COOCVT_MAX_CONCURRENT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return cfg, errors.New("COOCVT_MAX_CONCURRENT must be a positive integer")
		}
		cfg.MaxConcurrent = n
	}

	if s := os.Getenv("COOCVT_TRUST_PROXY"); s != "" {
		trust, err := strconv.ParseBool(s)
		if err != nil {
			return cfg, errors.New("COOCVT_TRUST_PROXY must be a boolean value (true/false/1/0)")
		}
		cfg.TrustProxy = trust
	}

	return cfg, nil
}
