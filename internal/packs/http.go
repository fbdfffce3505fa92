package packs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DoyleJ11/undercover/internal/words"
)

const maxPackBytes = 4 << 20

// HTTP fetches packs from GET <base>/<id>.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP builds a remote provider. A nil client gets a 10s timeout.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{base: strings.TrimRight(base, "/"), client: client}
}

func (h *HTTP) Pack(ctx context.Context, id string) (words.Pack, error) {
	if err := validID(id); err != nil {
		return words.Pack{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/"+url.PathEscape(id), nil)
	if err != nil {
		return words.Pack{}, fmt.Errorf("build pack request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return words.Pack{}, fmt.Errorf("fetch pack %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return words.Pack{}, fmt.Errorf("%s: %w", id, ErrPackNotFound)
	case resp.StatusCode != http.StatusOK:
		return words.Pack{}, fmt.Errorf("fetch pack %s: status %d", id, resp.StatusCode)
	}

	var pack words.Pack
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPackBytes)).Decode(&pack); err != nil {
		return words.Pack{}, fmt.Errorf("decode pack %s: %w", id, err)
	}
	return normalize(id, pack), nil
}
