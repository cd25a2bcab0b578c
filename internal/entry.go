// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/docindex/internal/index"
	"github.com/starford/docindex/internal/storage"
)

// Run regenerates every configured index once and, in watch mode, keeps
// regenerating until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		out:    os.Stdout,
		logOut: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("root", cfg.Root),
		slog.Int("document_types", len(cfg.DocumentTypes)),
		slog.Bool("check", app.check),
		slog.Bool("strict", app.strict),
		slog.Bool("watch", app.watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	types, err := cfg.DocTypes()
	if err != nil {
		return fmt.Errorf("compile document types: %w", err)
	}

	store, err := storage.NewFS(cfg.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	updater := index.NewUpdater(store, logger)
	updater.Check = app.check
	updater.Strict = app.strict

	report := func(r index.Result) {
		fmt.Fprintln(app.out, r.Status())
	}

	if err := updater.UpdateAll(ctx, types, report); err != nil {
		if !app.watch {
			return err
		}
		logger.Warn("initial pass failed", slog.String("error", err.Error()))
	}

	if !app.watch {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, stop := context.WithCancel(gCtx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return updater.Watch(watchCtx, types, report)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-watchCtx.Done():
			logger.Info("Context cancelled, stopping watcher")
		}
		stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped successfully")
	return nil
}
