package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/config"
	"github.com/DoyleJ11/undercover/internal/engine"
	"github.com/DoyleJ11/undercover/internal/packs"
	"github.com/DoyleJ11/undercover/internal/words"
)

func TestOpenHistory(t *testing.T) {
	store, closeFn, err := openHistory(config.Config{HistoryDriver: config.DriverMemory})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closeFn())

	store, closeFn, err = openHistory(config.Config{
		HistoryDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.MarkServed(context.Background(), "p", "k"))
	assert.NoError(t, closeFn())

	_, _, err = openHistory(config.Config{HistoryDriver: "redis"})
	assert.Error(t, err)
}

func TestPackProviders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.json"),
		[]byte(`{"words":[{"civilian":"Fork","undercover":"Spoon"}]}`), 0o600))

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"words":[{"civilian":"Rain","undercover":"Snow"}]}`))
	}))
	defer remote.Close()

	p := packProviders(config.Config{PackDir: dir, PackURL: remote.URL})
	ctx := context.Background()

	for _, id := range []string{words.StandardPackID, "local", "remote"} {
		pack, err := p.Pack(ctx, id)
		require.NoError(t, err, id)
		assert.NotEmpty(t, pack.Words, id)
	}
	_, err := p.Pack(ctx, "nowhere")
	assert.ErrorIs(t, err, packs.ErrPackNotFound)
}

func TestBuildWithoutLLM(t *testing.T) {
	a, err := build(config.Config{HistoryDriver: config.DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	defer a.close()

	s, err := a.engine.StartSession(context.Background(), engine.Config{Players: 4, Undercovers: 1})
	require.NoError(t, err)
	assert.Equal(t, engine.OriginStatic, s.WordOrigin)
}
