package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/config"
	"github.com/DoyleJ11/undercover/internal/engine"
	"github.com/DoyleJ11/undercover/internal/guess"
	"github.com/DoyleJ11/undercover/internal/history"
	"github.com/DoyleJ11/undercover/internal/llm"
	"github.com/DoyleJ11/undercover/internal/packs"
	"github.com/DoyleJ11/undercover/internal/storage/postgres"
	"github.com/DoyleJ11/undercover/internal/storage/sqlite"
)

type app struct {
	engine    *engine.Engine
	validator *guess.Validator
	catalog   packs.Lister
	close     func() error
}

func build(cfg config.Config, log *zap.Logger) (*app, error) {
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}

	catalog := packProviders(cfg)
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithLedger(history.NewLedger(store, history.WithLogger(log))),
		engine.WithPacks(catalog),
	}

	var judge guess.Judge
	if cfg.LLMEnabled() {
		client, err := llm.New(llm.Config{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
			Retries: cfg.LLMRetries,
		}, log)
		if err != nil {
			_ = closeStore()
			return nil, fmt.Errorf("llm client: %w", err)
		}
		opts = append(opts, engine.WithWordSource(llm.NewWordSource(client)))
		judge = llm.NewJudge(client)
	} else {
		log.Info("no llm key, using static words and exact-match guesses")
	}

	return &app{
		engine:    engine.New(opts...),
		validator: guess.NewValidator(judge, log),
		catalog:   catalog,
		close:     closeStore,
	}, nil
}

func openHistory(cfg config.Config) (history.Store, func() error, error) {
	switch cfg.HistoryDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite history: %w", err)
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres history: %w", err)
		}
		return s, s.Close, nil
	case config.DriverMemory:
		return history.NewMemoryStore(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown history driver %q", cfg.HistoryDriver)
}

// packProviders chains the built-ins, then local files, then the remote host.
func packProviders(cfg config.Config) packs.Chain {
	chain := packs.Chain{packs.Static{}}
	if cfg.PackDir != "" {
		chain = append(chain, packs.NewDir(cfg.PackDir))
	}
	if cfg.PackURL != "" {
		chain = append(chain, packs.NewHTTP(cfg.PackURL, nil))
	}
	return chain
}
