package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DoyleJ11/undercover/internal/words"
)

const (
	MinPlayers = 3
	MaxPlayers = 20
)

type Role string

const (
	RoleCivilian   Role = "civilian"
	RoleUndercover Role = "undercover"
	RoleNoWord     Role = "mrwhite"
)

// Infiltrator reports whether the role plays against the civilians.
func (r Role) Infiltrator() bool {
	return r == RoleUndercover || r == RoleNoWord
}

type Outcome string

const (
	OutcomeNone         Outcome = "none"
	OutcomeCivilians    Outcome = "civilians"
	OutcomeInfiltrators Outcome = "infiltrators"
	OutcomeGuesser      Outcome = "guesser"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePicking    Phase = "picking"
	PhaseDiscussion Phase = "discussion"
	PhaseVoting     Phase = "voting"
	PhaseDone       Phase = "done"
)

// WordOrigin records which path produced the session's word pair.
type WordOrigin string

const (
	OriginPack      WordOrigin = "pack"
	OriginGenerated WordOrigin = "generated"
	OriginArchive   WordOrigin = "archive"
	OriginStatic    WordOrigin = "static"
	OriginFallback  WordOrigin = "fallback"
)

// Player is one card slot. ID is the slot index.
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Picked     bool   `json:"picked"`
	Eliminated bool   `json:"eliminated"`
	Guessed    bool   `json:"guessed"`
}

// Session is the state of one round. Players is in card slot order;
// PickingOrder is the order people take their turn to pick a slot.
type Session struct {
	ID                 uuid.UUID   `json:"id"`
	Active             bool        `json:"active"`
	Players            []Player    `json:"players"`
	WordPair           *words.Pair `json:"wordPair,omitempty"`
	TotalUndercovers   int         `json:"totalUndercovers"`
	TotalNoWord        int         `json:"totalNoWord"`
	PickingOrder       []string    `json:"pickingOrder"`
	CurrentPickerIndex int         `json:"currentPickerIndex"`
	Mode               words.Mode  `json:"mode"`
	PackID             string      `json:"packId,omitempty"`
	WordOrigin         WordOrigin  `json:"wordOrigin,omitempty"`
	StartedAt          time.Time   `json:"startedAt"`
	Guesser            *int        `json:"guesser,omitempty"`
}

// Config describes the round to deal.
type Config struct {
	Players     int        `json:"players"`
	Undercovers int        `json:"undercovers"`
	NoWord      int        `json:"noWord"`
	Names       []string   `json:"names,omitempty"`
	Mode        words.Mode `json:"mode"`
	PackID      string     `json:"packId,omitempty"`
}

// Validate checks the player and role counts. Callers are expected to run it
// before StartSession; StartSession runs it again and refuses bad shapes.
func (c Config) Validate() error {
	switch {
	case c.Players < MinPlayers || c.Players > MaxPlayers:
		return fmt.Errorf("%w: players must be between %d and %d, got %d", ErrInvalidConfig, MinPlayers, MaxPlayers, c.Players)
	case c.Undercovers < 0 || c.NoWord < 0:
		return fmt.Errorf("%w: role counts cannot be negative", ErrInvalidConfig)
	case c.Undercovers+c.NoWord < 1:
		return fmt.Errorf("%w: at least one infiltrator is required", ErrInvalidConfig)
	case c.Undercovers+c.NoWord >= c.Players:
		return fmt.Errorf("%w: at least one civilian is required", ErrInvalidConfig)
	}
	return nil
}

// Roles builds the role multiset: undercovers, then no-word, then civilians.
func (c Config) Roles() []Role {
	roles := make([]Role, 0, c.Players)
	for range c.Undercovers {
		roles = append(roles, RoleUndercover)
	}
	for range c.NoWord {
		roles = append(roles, RoleNoWord)
	}
	for len(roles) < c.Players {
		roles = append(roles, RoleCivilian)
	}
	return roles
}

// PickerNames returns one display name per player: the preset names first,
// then numbered placeholders for any slot left without one.
func (c Config) PickerNames() []string {
	names := make([]string, c.Players)
	for i := range names {
		if i < len(c.Names) {
			names[i] = strings.TrimSpace(c.Names[i])
		}
		if names[i] == "" {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}
	return names
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := s
	out.Players = append([]Player(nil), s.Players...)
	out.PickingOrder = append([]string(nil), s.PickingOrder...)
	if s.WordPair != nil {
		p := *s.WordPair
		out.WordPair = &p
	}
	if s.Guesser != nil {
		g := *s.Guesser
		out.Guesser = &g
	}
	return out
}

// SlotRoles lists the role in each card slot.
func (s Session) SlotRoles() []Role {
	roles := make([]Role, len(s.Players))
	for i, p := range s.Players {
		roles[i] = p.Role
	}
	return roles
}

// AllPicked reports whether every person has taken their turn.
func (s Session) AllPicked() bool {
	return s.CurrentPickerIndex >= len(s.PickingOrder)
}

// CurrentPicker is the name of whoever picks next, or "" once everyone has.
func (s Session) CurrentPicker() string {
	if !s.Active || s.AllPicked() {
		return ""
	}
	return s.PickingOrder[s.CurrentPickerIndex]
}

// WordFor returns the secret word a role sees. The no-word role sees nothing.
func (s Session) WordFor(r Role) string {
	if s.WordPair == nil {
		return ""
	}
	switch r {
	case RoleCivilian:
		return s.WordPair.Civilian
	case RoleUndercover:
		return s.WordPair.Undercover
	}
	return ""
}

// Reveal is what the person who picked a slot privately sees.
type Reveal struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
	Role Role   `json:"role"`
	Word string `json:"word,omitempty"`
}

func (s Session) RevealFor(slot int) Reveal {
	p := s.Players[slot]
	return Reveal{Slot: slot, Name: p.Name, Role: p.Role, Word: s.WordFor(p.Role)}
}
