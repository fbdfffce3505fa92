// Package history remembers which words each pack has already served so a
// pack is dealt without replacement until it runs dry.
package history

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/words"
)

var ErrEmptyPack = errors.New("pack has no words")

// Store persists served word keys per pack. Implementations live under
// internal/storage; MemoryStore is the in-process one.
type Store interface {
	ServedKeys(ctx context.Context, packID string) ([]string, error)
	MarkServed(ctx context.Context, packID, key string) error
	Clear(ctx context.Context, packID string) error
}

// RNG picks an index in [0, n).
type RNG interface {
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

type Ledger struct {
	mu     sync.Mutex
	store  Store
	rng    RNG
	log    *zap.Logger
	served map[string]map[string]struct{} // packID -> keys, loaded lazily
}

type Option func(*Ledger)

func WithRNG(rng RNG) Option {
	return func(l *Ledger) { l.rng = rng }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLedger builds a ledger over store. A nil store keeps history in memory
// for the lifetime of the process.
func NewLedger(store Store, opts ...Option) *Ledger {
	if store == nil {
		store = NewMemoryStore()
	}
	l := &Ledger{
		store:  store,
		rng:    globalRNG{},
		log:    zap.NewNop(),
		served: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("ledger")
	return l
}

// UnusedWord returns a pair from all that packID has not served yet. Once every
// pair has been served the pack's history is wiped and the pick is made from
// the full list. ErrEmptyPack is the only error; storage failures degrade to
// an in-memory history and are logged.
func (l *Ledger) UnusedWord(ctx context.Context, packID string, all []words.Pair) (words.Pair, error) {
	if len(all) == 0 {
		return words.Pair{}, ErrEmptyPack
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	served := l.load(ctx, packID)

	unused := make([]words.Pair, 0, len(all))
	for _, w := range all {
		if _, ok := served[w.Key()]; !ok {
			unused = append(unused, w)
		}
	}

	var picked words.Pair
	if len(unused) == 0 {
		l.log.Info("pack exhausted, reshuffling",
			zap.String("pack", packID), zap.Int("words", len(all)))
		clear(served)
		if err := l.store.Clear(ctx, packID); err != nil {
			l.log.Warn("clear history failed", zap.String("pack", packID), zap.Error(err))
		}
		picked = all[l.rng.IntN(len(all))]
	} else {
		l.log.Debug("picking unused word",
			zap.String("pack", packID), zap.Int("unused", len(unused)))
		picked = unused[l.rng.IntN(len(unused))]
	}

	key := picked.Key()
	if _, dup := served[key]; !dup {
		served[key] = struct{}{}
		if err := l.store.MarkServed(ctx, packID, key); err != nil {
			l.log.Warn("persist history failed", zap.String("pack", packID), zap.Error(err))
		}
	}
	return picked, nil
}

// ResetPackHistory forgets everything packID has served.
func (l *Ledger) ResetPackHistory(ctx context.Context, packID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.served, packID)
	return l.store.Clear(ctx, packID)
}

// ServedCount reports how many distinct keys packID has served since its last reset.
func (l *Ledger) ServedCount(ctx context.Context, packID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.load(ctx, packID))
}

// load must be called with mu held.
func (l *Ledger) load(ctx context.Context, packID string) map[string]struct{} {
	if set, ok := l.served[packID]; ok {
		return set
	}
	set := make(map[string]struct{})
	keys, err := l.store.ServedKeys(ctx, packID)
	if err != nil {
		l.log.Warn("load history failed, starting pack fresh",
			zap.String("pack", packID), zap.Error(err))
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	l.served[packID] = set
	return set
}
