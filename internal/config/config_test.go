package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.HistoryDriver != DriverSQLite || cfg.SQLitePath != "undercover.db" {
		t.Fatalf("history = %q %q", cfg.HistoryDriver, cfg.SQLitePath)
	}
	if cfg.LLMTimeout != 8*time.Second || cfg.LLMRetries != 3 {
		t.Fatalf("llm = %v %d", cfg.LLMTimeout, cfg.LLMRetries)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.LLMEnabled() {
		t.Fatalf("llm should be off without a key")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UNDERCOVER_HISTORY_DRIVER", " Memory ")
	t.Setenv("UNDERCOVER_LLM_TIMEOUT", "2s")
	t.Setenv("UNDERCOVER_LLM_API_KEY", "gsk_test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryDriver != DriverMemory {
		t.Fatalf("HistoryDriver = %q", cfg.HistoryDriver)
	}
	if cfg.LLMTimeout != 2*time.Second {
		t.Fatalf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if !cfg.LLMEnabled() {
		t.Fatalf("llm should be on with a key")
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "UNDERCOVER_ADDR=0.0.0.0:9000\nUNDERCOVER_PACK_DIR=/packs\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UNDERCOVER_ADDR", "127.0.0.1:7000")
	// registered for cleanup so the value loaded from the file does not leak
	t.Setenv("UNDERCOVER_PACK_DIR", "")
	os.Unsetenv("UNDERCOVER_PACK_DIR")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Fatalf("Addr = %q, environment should win", cfg.Addr)
	}
	if cfg.PackDir != "/packs" {
		t.Fatalf("PackDir = %q", cfg.PackDir)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad duration", map[string]string{"UNDERCOVER_LLM_TIMEOUT": "soon"}, "parse env:"},
		{"unknown driver", map[string]string{"UNDERCOVER_HISTORY_DRIVER": "redis"}, "unknown history driver"},
		{"postgres without dsn", map[string]string{"UNDERCOVER_HISTORY_DRIVER": "postgres"}, "POSTGRES_DSN"},
		{"zero retries", map[string]string{"UNDERCOVER_LLM_RETRIES": "0"}, "LLM_RETRIES"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}
