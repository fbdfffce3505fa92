package history

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/undercover/internal/words"
)

var threeWords = []words.Pair{
	{Civilian: "Cat", Undercover: "Lion", Category: "Animals", ID: "w1"},
	{Civilian: "Tea", Undercover: "Coffee", Category: "Food", ID: "w2"},
	{Civilian: "Rain", Undercover: "Snow", Category: "Weather", ID: "w3"},
}

type brokenStore struct{ err error }

func (b brokenStore) ServedKeys(context.Context, string) ([]string, error) { return nil, b.err }
func (b brokenStore) MarkServed(context.Context, string, string) error { return b.err }
func (b brokenStore) Clear(context.Context, string) error { return b.err }

func newTestLedger(store Store, seed uint64) *Ledger {
	return NewLedger(store, WithRNG(rand.New(rand.NewPCG(seed, seed))))
}

func TestUnusedWord_ThreeWordPackCyclesAfterExhaustion(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(NewMemoryStore(), 1)

	seen := map[string]int{}
	for i := 0; i < 3; i++ {
		w, err := l.UnusedWord(ctx, "pack", threeWords)
		require.NoError(t, err)
		seen[w.Key()]++
	}
	assert.Equal(t, map[string]int{"w1": 1, "w2": 1, "w3": 1}, seen)
	assert.Equal(t, 3, l.ServedCount(ctx, "pack"))

	fourth, err := l.UnusedWord(ctx, "pack", threeWords)
	require.NoError(t, err)
	assert.Contains(t, []string{"w1", "w2", "w3"}, fourth.Key())
	assert.Equal(t, 1, l.ServedCount(ctx, "pack"), "history restarts after reshuffle")
}

func TestUnusedWord_NoRepeatsUntilEveryWordServed(t *testing.T) {
	ctx := context.Background()
	pack := words.BuiltinPack(words.ModeStandard)

	for seed := uint64(1); seed <= 5; seed++ {
		l := newTestLedger(nil, seed)
		seen := map[string]bool{}
		for i := 0; i < len(pack.Words); i++ {
			w, err := l.UnusedWord(ctx, pack.ID, pack.Words)
			require.NoError(t, err)
			require.False(t, seen[w.Key()], "seed %d repeated %s at draw %d", seed, w.Key(), i)
			seen[w.Key()] = true
		}
		assert.Len(t, seen, len(pack.Words))
	}
}

func TestUnusedWord_TupleKeyWhenIDMissing(t *testing.T) {
	ctx := context.Background()
	noIDs := []words.Pair{
		{Civilian: "Sun", Undercover: "Moon"},
		{Civilian: "Sea", Undercover: "Ocean"},
	}
	store := NewMemoryStore()
	l := newTestLedger(store, 3)

	a, err := l.UnusedWord(ctx, "user-pack", noIDs)
	require.NoError(t, err)
	b, err := l.UnusedWord(ctx, "user-pack", noIDs)
	require.NoError(t, err)

	assert.NotEqual(t, a.Key(), b.Key())
	keys, err := store.ServedKeys(ctx, "user-pack")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sun|Moon", "Sea|Ocean"}, keys)
}

func TestUnusedWord_EmptyPack(t *testing.T) {
	l := newTestLedger(nil, 1)
	_, err := l.UnusedWord(context.Background(), "empty", nil)
	assert.ErrorIs(t, err, ErrEmptyPack)
}

func TestUnusedWord_HistorySurvivesANewLedger(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := newTestLedger(store, 9)
	w1, err := first.UnusedWord(ctx, "pack", threeWords)
	require.NoError(t, err)
	w2, err := first.UnusedWord(ctx, "pack", threeWords)
	require.NoError(t, err)

	restarted := newTestLedger(store, 11)
	w3, err := restarted.UnusedWord(ctx, "pack", threeWords)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"w1", "w2", "w3"}, []string{w1.Key(), w2.Key(), w3.Key()})
}

func TestUnusedWord_PacksAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(nil, 5)

	for i := 0; i < 3; i++ {
		_, err := l.UnusedWord(ctx, "a", threeWords)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.ServedCount(ctx, "a"))
	assert.Equal(t, 0, l.ServedCount(ctx, "b"))
}

func TestUnusedWord_StorageFailureDegrades(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(brokenStore{err: errors.New("disk gone")}, 4)

	for i := 0; i < 5; i++ {
		w, err := l.UnusedWord(ctx, "pack", threeWords)
		require.NoError(t, err)
		assert.True(t, w.Valid())
	}
}

func TestResetPackHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	l := newTestLedger(store, 2)

	_, err := l.UnusedWord(ctx, "pack", threeWords)
	require.NoError(t, err)
	require.Equal(t, 1, l.ServedCount(ctx, "pack"))

	require.NoError(t, l.ResetPackHistory(ctx, "pack"))
	assert.Equal(t, 0, l.ServedCount(ctx, "pack"))

	keys, err := store.ServedKeys(ctx, "pack")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStore_MarkServedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.MarkServed(ctx, "p", "k"))
	require.NoError(t, s.MarkServed(ctx, "p", "k"))

	keys, err := s.ServedKeys(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}
