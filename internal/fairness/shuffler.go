// Package fairness deals roles and turn order so that the previous session's
// pattern is unlikely, but not impossible, to repeat.
package fairness

import "math/rand/v2"

// DefaultReshuffleChance is the probability that a deal repeating last
// session's pattern is thrown away and dealt again.
const DefaultReshuffleChance = 0.8

// RNG is the randomness the shuffler needs. *rand.Rand from math/rand/v2
// satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }
func (globalRNG) Float64() float64 { return rand.Float64() }

// Memory is the fingerprint of the last session: who picked first and which
// role sat in each card slot. The zero value means "no previous session".
type Memory[R comparable] struct {
	FirstPicker string
	SlotRoles   []R
}

// Remember builds the memory for the next deal from this session's turn
// order and slot roles.
func Remember[R comparable](order []string, slots []R) Memory[R] {
	m := Memory[R]{SlotRoles: append([]R(nil), slots...)}
	if len(order) > 0 {
		m.FirstPicker = order[0]
	}
	return m
}

// IsZero reports whether there is nothing to compare against.
func (m Memory[R]) IsZero() bool {
	return m.FirstPicker == "" && len(m.SlotRoles) == 0
}

type Shuffler struct {
	rng             RNG
	reshuffleChance float64
}

type Option func(*Shuffler)

// WithRNG replaces the process-wide generator, mostly for tests.
func WithRNG(rng RNG) Option {
	return func(s *Shuffler) { s.rng = rng }
}

// WithReshuffleChance overrides DefaultReshuffleChance. Values are clamped to [0, 1].
func WithReshuffleChance(p float64) Option {
	return func(s *Shuffler) {
		s.reshuffleChance = min(max(p, 0), 1)
	}
}

func NewShuffler(opts ...Option) *Shuffler {
	s := &Shuffler{rng: globalRNG{}, reshuffleChance: DefaultReshuffleChance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates).
func Shuffle[T any](s *Shuffler, items []T) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal shuffles items and, if repeats flags the result, deals once more with
// probability reshuffleChance. The second deal is kept whatever it looks like,
// so streaks stay possible, only rarer.
func Deal[T any](s *Shuffler, items []T, repeats func([]T) bool) []T {
	out := Shuffle(s, items)
	if repeats != nil && repeats(out) && s.rng.Float64() < s.reshuffleChance {
		out = Shuffle(s, items)
	}
	return out
}

// TurnOrder deals the picking order, steering away from lastFirst leading again.
func (s *Shuffler) TurnOrder(names []string, lastFirst string) []string {
	return Deal(s, names, func(order []string) bool {
		return lastFirst != "" && len(order) > 0 && order[0] == lastFirst
	})
}

// SlotRoles deals roles into card slots, steering away from any special role
// landing in the same slot it held last session. special marks the roles
// worth tracking (everything but civilian).
func SlotRoles[R comparable](s *Shuffler, roles, last []R, special func(R) bool) []R {
	return Deal(s, roles, func(slots []R) bool {
		return SameSpecialSlot(slots, last, special)
	})
}

// SameSpecialSlot reports whether some slot holds the same special role in
// both deals.
func SameSpecialSlot[R comparable](slots, last []R, special func(R) bool) bool {
	n := min(len(slots), len(last))
	for i := 0; i < n; i++ {
		if special(slots[i]) && slots[i] == last[i] {
			return true
		}
	}
	return false
}
