// Command server boots the catalog API: configuration, storage and
// migrations via the app container, then the HTTP transport.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/app"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/config"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/logging"
	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/transport/web"
)

// shutdownGrace bounds request draining after a stop signal.
const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("catalog API exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	setupLogger(cfg)

	slog.Info("starting catalog API",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
		"database", cfg.Database.Type,
		"import_timeout", cfg.Import.Timeout,
	)
	if !cfg.RateLimiter.Enabled {
		slog.Warn("rate limiter is disabled")
	}

	container, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      web.NewMux(web.NewHandler(container), cfg, container),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("catalog API stopped")
	return nil
}

// setupLogger installs the process-wide structured logger. With Loki
// enabled every record goes to both the console and the push endpoint.
func setupLogger(conf *config.Config) {
	level := parseLevel(conf.Logging.Level)

	var handler slog.Handler
	if strings.ToLower(conf.Logging.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: conf.IsProduction(),
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if conf.Logging.LokiEnabled {
		loki := logging.NewLokiHandler(
			conf.Logging.LokiURL,
			conf.Logging.LokiLabels,
			conf.Logging.LokiBatchSize,
			true,
			level,
		)
		handler = logging.NewMultiHandler(handler, loki)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("logging configured",
		"level", level.String(),
		"format", conf.Logging.Format,
		"loki_enabled", conf.Logging.LokiEnabled,
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
