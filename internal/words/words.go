// Package words holds the word pair model shared by every word source,
// plus the built-in packs that back the static fallback.
package words

import "strings"

// Mode selects the tone of the words served for a session.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeMature   Mode = "mature"
)

// Well-known ids for the built-in packs. History for these packs is tracked
// exactly like user or remote packs.
const (
	StandardPackID = "STANDARD_STATIC_V1"
	MaturePackID   = "SPICY_STATIC_V1"
)

// Pair is one round's secret: the civilians' word and the undercover word.
type Pair struct {
	Civilian   string `json:"civilian"`
	Undercover string `json:"undercover"`
	Category   string `json:"category"`
	ID         string `json:"id,omitempty"`
}

// Key identifies a pair for history de-duplication. Packs authored without
// ids fall back to the civilian|undercover tuple.
func (p Pair) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Civilian + "|" + p.Undercover
}

// Valid reports whether both words are present and distinct.
func (p Pair) Valid() bool {
	c := strings.TrimSpace(p.Civilian)
	u := strings.TrimSpace(p.Undercover)
	return c != "" && u != "" && !strings.EqualFold(c, u)
}

// Pack is a named, identified collection of pairs.
type Pack struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Words []Pair `json:"words"`
}

// ParseMode maps user input onto a Mode. "spicy" is accepted for mature.
// Anything unrecognised is standard.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mature", "spicy":
		return ModeMature
	default:
		return ModeStandard
	}
}

// BuiltinPackID returns the id of the static pack for mode.
func BuiltinPackID(mode Mode) string {
	if mode == ModeMature {
		return MaturePackID
	}
	return StandardPackID
}

// BuiltinPack returns a copy of the static pack for mode.
func BuiltinPack(mode Mode) Pack {
	src := standardPairs
	name := "Standard"
	if mode == ModeMature {
		src = maturePairs
		name = "Mature"
	}
	out := make([]Pair, len(src))
	copy(out, src)
	return Pack{ID: BuiltinPackID(mode), Name: name, Words: out}
}

// IsBuiltin reports whether id names one of the static packs.
func IsBuiltin(id string) bool {
	return id == StandardPackID || id == MaturePackID
}

// Fallback is the last-resort pair for mode. It never changes, so a session
// can always start even when every other source has failed.
func Fallback(mode Mode) Pair {
	if mode == ModeMature {
		return maturePairs[0]
	}
	return standardPairs[0]
}
