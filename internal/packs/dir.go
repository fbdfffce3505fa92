package packs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DoyleJ11/undercover/internal/words"
)

// Dir loads packs from <root>/<id>.json.
type Dir struct {
	root string
}

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Pack(ctx context.Context, id string) (words.Pack, error) {
	if err := ctx.Err(); err != nil {
		return words.Pack{}, err
	}
	if err := validID(id); err != nil {
		return words.Pack{}, err
	}
	data, err := os.ReadFile(filepath.Join(d.root, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return words.Pack{}, fmt.Errorf("%s: %w", id, ErrPackNotFound)
	}
	if err != nil {
		return words.Pack{}, fmt.Errorf("read pack %s: %w", id, err)
	}
	var pack words.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return words.Pack{}, fmt.Errorf("decode pack %s: %w", id, err)
	}
	return normalize(id, pack), nil
}

// IDs lists the pack ids present in the directory, sorted. A directory that
// does not exist yet holds no packs.
func (d *Dir) IDs() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pack dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if validID(id) == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
