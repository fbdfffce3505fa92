// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Prefix = "UNDERCOVER_"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Addr            string        `env:"ADDR"             envDefault:"127.0.0.1:8080"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	LogDev          bool          `env:"LOG_DEV"          envDefault:"false"`
	HistoryDriver   string        `env:"HISTORY_DRIVER"   envDefault:"sqlite"`
	SQLitePath      string        `env:"SQLITE_PATH"      envDefault:"undercover.db"`
	PostgresDSN     string        `env:"POSTGRES_DSN"`
	PackDir         string        `env:"PACK_DIR"`
	PackURL         string        `env:"PACK_URL"`
	LLMAPIKey       string        `env:"LLM_API_KEY"`
	LLMBaseURL      string        `env:"LLM_BASE_URL"     envDefault:"https://api.groq.com/openai/v1/"`
	LLMModel        string        `env:"LLM_MODEL"        envDefault:"llama-3.1-8b-instant"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT"      envDefault:"8s"`
	LLMRetries      int           `env:"LLM_RETRIES"      envDefault:"3"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads the given .env files (".env" when none are named) without
// overriding variables already set, then parses the environment. Missing
// files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.HistoryDriver = strings.ToLower(strings.TrimSpace(cfg.HistoryDriver))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.HistoryDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%sSQLITE_PATH is required for the sqlite driver", Prefix)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%sPOSTGRES_DSN is required for the postgres driver", Prefix)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown history driver %q", c.HistoryDriver)
	}
	if c.LLMRetries < 1 {
		return fmt.Errorf("%sLLM_RETRIES must be at least 1", Prefix)
	}
	return nil
}

// LLMEnabled reports whether generated words and the guess judge are on.
func (c Config) LLMEnabled() bool {
	return strings.TrimSpace(c.LLMAPIKey) != ""
}
