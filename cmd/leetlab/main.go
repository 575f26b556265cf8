package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"leetlab/internal/config"
	"leetlab/internal/http/server"
	"leetlab/internal/infra/logging"
	"leetlab/internal/infra/ratelimit"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires and serves the app. It returns once the server is down; deferred
// cleanup has already happened when it returns.
func run() error {
	cfg := config.Load()

	if err := ensureLogDir(cfg.Logger.File); err != nil {
		logging.Error("Failed to create log directory, logging to stdout only", "file", cfg.Logger.File, "error", err)
		cfg.Logger.File = ""
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	store := ratelimit.NewStore(ratelimit.RedisConfig{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn("Failed to close limiter store", "error", err)
		}
	}()

	// The authentication routes are provided by an external module; until one
	// is wired in, the group answers 501.
	app := server.New(server.Deps{Config: cfg, Store: store})

	idleConnsClosed := make(chan struct{})
	err := startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
	return err
}

// startServer starts the Fiber app and blocks until a shutdown signal arrives
// or the listener fails. idleConnsClosed is closed when the server is down.
// A failed listen is returned; a signal-driven shutdown returns nil.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) error {
	app.Hooks().OnListen(func(ld fiber.ListenData) error {
		logging.Info("Server running on port "+ld.Port, "host", ld.Host, "port", ld.Port)
		return nil
	})

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			logging.Error("Server error", "addr", cfg.Addr(), "error", err)
		}
		close(idleConnsClosed)
		return err
	case <-sigint:
	}

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
	return nil
}

// ensureLogDir creates the directory holding the log file.
func ensureLogDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
