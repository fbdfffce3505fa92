package engine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/DoyleJ11/undercover/internal/words"
)

// newActiveSession deals roles into slots in the given order with pickers
// named p0, p1, ...
func newActiveSession(roles ...Role) Session {
	s := Session{
		Active:   true,
		WordPair: &words.Pair{Civilian: "Tea", Undercover: "Coffee", Category: "Drinks"},
	}
	for i, r := range roles {
		s.Players = append(s.Players, Player{ID: i, Role: r})
		s.PickingOrder = append(s.PickingOrder, fmt.Sprintf("p%d", i))
		switch r {
		case RoleUndercover:
			s.TotalUndercovers++
		case RoleNoWord:
			s.TotalNoWord++
		}
	}
	return s
}

func mustApply(t *testing.T, s Session, cmds ...Command) Session {
	t.Helper()
	for _, cmd := range cmds {
		var err error
		_, s, err = Apply(s, cmd)
		if err != nil {
			t.Fatalf("%s slot %d: unexpected err: %v", cmd.Type, cmd.Slot, err)
		}
	}
	return s
}

func pick(slot int) Command { return Command{Type: CmdPickCard, Slot: slot} }
func eliminate(slot int) Command { return Command{Type: CmdEliminate, Slot: slot} }

func TestPickCardBindsNextPicker(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleUndercover, RoleCivilian)

	events, next, err := Apply(s, pick(2))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := next.Players[2]; got.Name != "p0" || !got.Picked {
		t.Fatalf("slot 2 = %+v, want picked by p0", got)
	}
	if next.CurrentPickerIndex != 1 {
		t.Fatalf("CurrentPickerIndex = %d, want 1", next.CurrentPickerIndex)
	}
	if len(events) != 1 || events[0].Type != EvtCardPicked || events[0].Name != "p0" {
		t.Fatalf("events = %+v", events)
	}

	next = mustApply(t, next, pick(0))
	events, next, err = Apply(next, pick(1))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ContainsEvent(events, EvtPickingCompleted) {
		t.Fatalf("last pick should complete picking, got %+v", events)
	}
	if next.Players[1].Name != "p2" {
		t.Fatalf("slot 1 name = %q, want p2", next.Players[1].Name)
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleUndercover, RoleCivilian)
	before := s.Clone()

	mustApply(t, s, pick(0), eliminate(1))

	if !reflect.DeepEqual(s, before) {
		t.Fatalf("input session was mutated:\n got %+v\nwant %+v", s, before)
	}
}

func TestPickCardIsIdempotent(t *testing.T) {
	once := mustApply(t, newActiveSession(RoleCivilian, RoleNoWord, RoleCivilian), pick(1))

	events, twice, err := Apply(once, pick(1))
	if !errors.Is(err, ErrSlotAlreadyPicked) {
		t.Fatalf("err = %v, want ErrSlotAlreadyPicked", err)
	}
	if events != nil {
		t.Fatalf("events = %+v, want none", events)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("double pick changed the session")
	}
}

func TestCurrentPickerIndexNeverExceedsOrder(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleUndercover, RoleCivilian, RoleCivilian)
	for slot := range s.Players {
		s = mustApply(t, s, pick(slot))
	}
	for slot := range s.Players {
		if _, _, err := Apply(s, pick(slot)); err == nil {
			t.Fatalf("pick %d after everyone picked should fail", slot)
		}
	}
	if s.CurrentPickerIndex != len(s.PickingOrder) {
		t.Fatalf("CurrentPickerIndex = %d, want %d", s.CurrentPickerIndex, len(s.PickingOrder))
	}
	if s.CurrentPicker() != "" {
		t.Fatalf("CurrentPicker = %q, want empty", s.CurrentPicker())
	}
}

func TestEliminateIsIdempotent(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover)
	once := mustApply(t, s, eliminate(0))

	_, twice, err := Apply(once, eliminate(0))
	if !errors.Is(err, ErrSlotAlreadyEliminated) {
		t.Fatalf("err = %v, want ErrSlotAlreadyEliminated", err)
	}
	if !twice.Players[0].Eliminated {
		t.Fatalf("eliminated flag reverted")
	}
}

func TestEliminateAllowsUnpickedSlot(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover)
	next := mustApply(t, s, eliminate(2))
	if p := next.Players[2]; !p.Eliminated || p.Picked {
		t.Fatalf("slot 2 = %+v, want eliminated and unpicked", p)
	}
}

func TestApplyRejections(t *testing.T) {
	cases := []struct {
		name    string
		setup   Session
		cmd     Command
		wantErr error
	}{
		{
			name:    "no session",
			setup:   Session{},
			cmd:     pick(0),
			wantErr: ErrNoActiveSession,
		},
		{
			name:    "negative slot",
			setup:   newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover),
			cmd:     pick(-1),
			wantErr: ErrSlotOutOfRange,
		},
		{
			name:    "slot past the end",
			setup:   newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover),
			cmd:     eliminate(3),
			wantErr: ErrSlotOutOfRange,
		},
		{
			name:    "unknown command",
			setup:   newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover),
			cmd:     Command{Type: "Dance", Slot: 0},
			wantErr: ErrUnsupportedCommand,
		},
		{
			name: "eliminate after the game is won",
			setup: func() Session {
				s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover)
				s.Players[3].Eliminated = true
				return s
			}(),
			cmd:     eliminate(0),
			wantErr: ErrGameOver,
		},
		{
			name:    "rename unpicked slot",
			setup:   newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover),
			cmd:     Command{Type: CmdRenamePlayer, Slot: 0, Name: "Ana"},
			wantErr: ErrSlotNotPicked,
		},
		{
			name: "rename to blank",
			setup: func() Session {
				s := newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover)
				s.Players[0].Picked = true
				return s
			}(),
			cmd:     Command{Type: CmdRenamePlayer, Slot: 0, Name: "   "},
			wantErr: ErrInvalidName,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, got, err := Apply(tc.setup, tc.cmd)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if events != nil {
				t.Fatalf("events = %+v, want none", events)
			}
			if !reflect.DeepEqual(got, tc.setup) {
				t.Fatalf("rejected command changed the session")
			}
		})
	}
}

func TestEvaluateWinCondition(t *testing.T) {
	cases := []struct {
		name       string
		roles      []Role
		eliminated []int
		want       Outcome
	}{
		{
			name:  "fresh game continues",
			roles: []Role{RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover},
			want:  OutcomeNone,
		},
		{
			name:       "one civilian and one infiltrator left",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleNoWord},
			eliminated: []int{0, 1, 4},
			want:       OutcomeInfiltrators,
		},
		{
			name:       "all infiltrators out with three civilians standing",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleNoWord},
			eliminated: []int{3, 4},
			want:       OutcomeCivilians,
		},
		{
			name:       "civilians drop to one as the last infiltrator falls",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleUndercover},
			eliminated: []int{0, 2},
			want:       OutcomeInfiltrators,
		},
		{
			name:       "no civilians and no infiltrators",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleUndercover},
			eliminated: []int{0, 1, 2},
			want:       OutcomeInfiltrators,
		},
		{
			name:       "two civilians and no infiltrators",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleCivilian, RoleNoWord},
			eliminated: []int{0, 3},
			want:       OutcomeCivilians,
		},
		{
			name:       "civilian eliminated, game goes on",
			roles:      []Role{RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover},
			eliminated: []int{1},
			want:       OutcomeNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newActiveSession(tc.roles...)
			for _, slot := range tc.eliminated {
				s.Players[slot].Eliminated = true
			}
			if got := EvaluateWinCondition(s); got != tc.want {
				t.Fatalf("EvaluateWinCondition = %s, want %s", got, tc.want)
			}
		})
	}

	if got := EvaluateWinCondition(Session{}); got != OutcomeNone {
		t.Fatalf("inactive session = %s, want none", got)
	}
}

func TestEliminateReportsWin(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover)

	events, _, err := Apply(s, eliminate(3))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(events) != 2 || events[1].Type != EvtGameWon || events[1].Outcome != OutcomeCivilians {
		t.Fatalf("events = %+v, want PlayerEliminated then GameWon(civilians)", events)
	}
}

func TestResolveGuess(t *testing.T) {
	base := func(t *testing.T) Session {
		t.Helper()
		s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleNoWord, RoleUndercover)
		for slot := range s.Players {
			s = mustApply(t, s, pick(slot))
		}
		return s
	}

	t.Run("correct guess wins", func(t *testing.T) {
		s := mustApply(t, base(t), eliminate(3))
		events, next, err := Apply(s, Command{Type: CmdResolveGuess, Slot: 3, Correct: true})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !ContainsEvent(events, EvtGameWon) {
			t.Fatalf("events = %+v, want GameWon", events)
		}
		if Result(next) != OutcomeGuesser || next.Guesser == nil || *next.Guesser != 3 {
			t.Fatalf("Result = %s guesser = %v", Result(next), next.Guesser)
		}
		if EvaluateWinCondition(next) != OutcomeNone {
			t.Fatalf("count-based result should be unaffected by the guess")
		}
		if DerivePhase(next) != PhaseDone {
			t.Fatalf("phase = %s, want done", DerivePhase(next))
		}
	})

	t.Run("wrong guess is spent", func(t *testing.T) {
		s := mustApply(t, base(t), eliminate(4), Command{Type: CmdResolveGuess, Slot: 4})
		if Result(s) != OutcomeNone || !s.Players[4].Guessed {
			t.Fatalf("wrong guess: result %s guessed %v", Result(s), s.Players[4].Guessed)
		}
		if _, _, err := Apply(s, Command{Type: CmdResolveGuess, Slot: 4, Correct: true}); !errors.Is(err, ErrAlreadyGuessed) {
			t.Fatalf("second guess err = %v, want ErrAlreadyGuessed", err)
		}
	})

	t.Run("last infiltrator may still steal the win", func(t *testing.T) {
		s := mustApply(t, base(t), eliminate(4), eliminate(3))
		if Result(s) != OutcomeCivilians {
			t.Fatalf("Result = %s, want civilians", Result(s))
		}
		s = mustApply(t, s, Command{Type: CmdResolveGuess, Slot: 3, Correct: true})
		if Result(s) != OutcomeGuesser {
			t.Fatalf("Result = %s, want guesser", Result(s))
		}
	})

	rejections := []struct {
		name    string
		setup   func(t *testing.T) Session
		slot    int
		wantErr error
	}{
		{"not eliminated", base, 3, ErrSlotNotEliminated},
		{"civilian", func(t *testing.T) Session { return mustApply(t, base(t), eliminate(0)) }, 0, ErrNotInfiltrator},
		{"after another guesser won", func(t *testing.T) Session {
			return mustApply(t, base(t), eliminate(3), eliminate(4), Command{Type: CmdResolveGuess, Slot: 3, Correct: true})
		}, 4, ErrGameOver},
	}
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Apply(tc.setup(t), Command{Type: CmdResolveGuess, Slot: tc.slot, Correct: true}); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRenamePlayer(t *testing.T) {
	s := mustApply(t, newActiveSession(RoleCivilian, RoleCivilian, RoleUndercover), pick(1),
		Command{Type: CmdRenamePlayer, Slot: 1, Name: "  Ana  "})
	if s.Players[1].Name != "Ana" {
		t.Fatalf("name = %q, want Ana", s.Players[1].Name)
	}
}

func TestDerivePhase(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover)
	if got := DerivePhase(Session{}); got != PhaseIdle {
		t.Fatalf("empty = %s", got)
	}
	if got := DerivePhase(s); got != PhasePicking {
		t.Fatalf("fresh = %s", got)
	}
	s = mustApply(t, s, pick(0), pick(1), pick(2), pick(3))
	if got := DerivePhase(s); got != PhaseDiscussion {
		t.Fatalf("all picked = %s", got)
	}
	s = mustApply(t, s, eliminate(0))
	if got := DerivePhase(s); got != PhaseVoting {
		t.Fatalf("after elimination = %s", got)
	}
	s = mustApply(t, s, eliminate(3))
	if got := DerivePhase(s); got != PhaseDone {
		t.Fatalf("after win = %s", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Players: 3, Undercovers: 1}, false},
		{Config{Players: 3, NoWord: 1}, false},
		{Config{Players: 5, Undercovers: 2, NoWord: 2}, false},
		{Config{Players: MaxPlayers, Undercovers: 3, NoWord: 1}, false},
		{Config{Players: 2, Undercovers: 1}, true},
		{Config{Players: MaxPlayers + 1, Undercovers: 1}, true},
		{Config{Players: 4}, true},
		{Config{Players: 4, Undercovers: 2, NoWord: 2}, true},
		{Config{Players: 4, Undercovers: -1, NoWord: 2}, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d-%d-%d", tc.cfg.Players, tc.cfg.Undercovers, tc.cfg.NoWord), func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestConfigPickerNames(t *testing.T) {
	cfg := Config{Players: 4, Names: []string{" Ana ", "", "Bo"}}
	want := []string{"Ana", "Player 2", "Bo", "Player 4"}
	if got := cfg.PickerNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PickerNames = %v, want %v", got, want)
	}

	cfg = Config{Players: 3, Names: []string{"a", "b", "c", "d"}}
	if got := cfg.PickerNames(); len(got) != 3 {
		t.Fatalf("extra names should be dropped, got %v", got)
	}
}

func TestSessionRevealFor(t *testing.T) {
	s := newActiveSession(RoleCivilian, RoleUndercover, RoleNoWord, RoleCivilian)
	cases := map[int]string{0: "Tea", 1: "Coffee", 2: ""}
	for slot, want := range cases {
		if got := s.RevealFor(slot).Word; got != want {
			t.Fatalf("slot %d word = %q, want %q", slot, got, want)
		}
	}
}
