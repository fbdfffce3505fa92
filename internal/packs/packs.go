// Package packs supplies word packs to the engine: the built-ins, JSON files
// on disk, and a remote pack host.
package packs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/DoyleJ11/undercover/internal/words"
)

var (
	ErrPackNotFound = errors.New("pack not found")
	ErrBadPackID    = errors.New("invalid pack id")
)

var packIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Provider returns the full, authoritative word list for a pack.
type Provider interface {
	Pack(ctx context.Context, id string) (words.Pack, error)
}

// Lister is implemented by providers that can enumerate their packs.
type Lister interface {
	IDs() ([]string, error)
}

// Static serves the two built-in packs.
type Static struct{}

func (Static) IDs() ([]string, error) {
	return []string{words.StandardPackID, words.MaturePackID}, nil
}

func (Static) Pack(_ context.Context, id string) (words.Pack, error) {
	switch id {
	case words.StandardPackID:
		return words.BuiltinPack(words.ModeStandard), nil
	case words.MaturePackID:
		return words.BuiltinPack(words.ModeMature), nil
	}
	return words.Pack{}, fmt.Errorf("%s: %w", id, ErrPackNotFound)
}

// Chain asks each provider in turn and returns the first pack found. Errors
// other than ErrPackNotFound stop the search.
type Chain []Provider

func (c Chain) Pack(ctx context.Context, id string) (words.Pack, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		pack, err := p.Pack(ctx, id)
		if err == nil {
			return pack, nil
		}
		if !errors.Is(err, ErrPackNotFound) {
			return words.Pack{}, err
		}
	}
	return words.Pack{}, fmt.Errorf("%s: %w", id, ErrPackNotFound)
}

// IDs merges the ids of every provider that can list them. Providers that
// cannot, such as a remote host, are skipped.
func (c Chain) IDs() ([]string, error) {
	seen := make(map[string]struct{})
	for _, p := range c {
		l, ok := p.(Lister)
		if !ok {
			continue
		}
		ids, err := l.IDs()
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func validID(id string) error {
	if !packIDPattern.MatchString(id) {
		return fmt.Errorf("%q: %w", id, ErrBadPackID)
	}
	return nil
}

// normalize trims every pair, drops the unusable ones and pins the pack id.
func normalize(id string, pack words.Pack) words.Pack {
	out := words.Pack{ID: id, Name: strings.TrimSpace(pack.Name)}
	if out.Name == "" {
		out.Name = id
	}
	for _, w := range pack.Words {
		w.Civilian = strings.TrimSpace(w.Civilian)
		w.Undercover = strings.TrimSpace(w.Undercover)
		w.Category = strings.TrimSpace(w.Category)
		w.ID = strings.TrimSpace(w.ID)
		if !w.Valid() {
			continue
		}
		if w.Category == "" {
			w.Category = "General"
		}
		out.Words = append(out.Words, w)
	}
	return out
}
