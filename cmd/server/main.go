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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/undercover/internal/config"
	"github.com/DoyleJ11/undercover/internal/httpapi"
	"github.com/DoyleJ11/undercover/internal/logging"
	"github.com/DoyleJ11/undercover/internal/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	deps, err := build(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.close(); err != nil {
			log.Warn("close history store", zap.Error(err))
		}
	}()

	tb := table.New(ctx, deps.engine, deps.validator, log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.SetupRoutes(tb, deps.catalog, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("history", cfg.HistoryDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		select {
		case tb.Inbox() <- table.Shutdown{}:
		case <-tb.Done():
		}
		<-tb.Done()
		log.Info("shut down")
		return err
	})
	return g.Wait()
}
