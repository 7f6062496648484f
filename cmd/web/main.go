package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/crucial707/todo-web/internal/config"
	"github.com/crucial707/todo-web/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// Load configuration
	cfg := config.Load()
	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// Database, session store and router
	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", cfg.DBPath, "session_store", cfg.SessionStore)

	// Start server LAST
	ln, err := server.Listen(cfg.Port)
	if err != nil {
		logger.Error("listen failed", "err", err)
		app.Close()
		os.Exit(1)
	}

	srv := &http.Server{
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			app.Close()
			os.Exit(1)
		}
	}()
	logger.Info("server running", "url", fmt.Sprintf("http://localhost:%d", server.Port(ln)))

	// Stop listening first, then release the stores.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"web": func(ctx context.Context) error {
				logger.Info("shutting down")
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("http shutdown", "err", err)
				}
				if err := app.Close(); err != nil {
					return err
				}
				logger.Info("database connection closed")
				return nil
			},
		},
	)

	exitCode := <-wait
	os.Exit(exitCode)
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
