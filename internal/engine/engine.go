package engine

import (
	"errors"
	"strings"
)

var ErrNoActiveSession = errors.New("no active session")
var ErrSlotOutOfRange = errors.New("slot out of range")
var ErrSlotAlreadyPicked = errors.New("slot already picked")
var ErrSlotNotPicked = errors.New("slot not picked")
var ErrSlotAlreadyEliminated = errors.New("slot already eliminated")
var ErrSlotNotEliminated = errors.New("slot not eliminated")
var ErrNotInfiltrator = errors.New("slot is not an infiltrator")
var ErrAlreadyGuessed = errors.New("slot already guessed")
var ErrPickingComplete = errors.New("every player has picked")
var ErrInvalidName = errors.New("invalid name")
var ErrGameOver = errors.New("game already over")
var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrInvalidConfig = errors.New("invalid session config")

type CommandType string

const (
	CmdPickCard     CommandType = "PickCard"
	CmdEliminate    CommandType = "Eliminate"
	CmdRenamePlayer CommandType = "RenamePlayer"
	CmdResolveGuess CommandType = "ResolveGuess"
)

/*
	CmdPickCard     -> EvtCardPicked -> EvtPickingCompleted (last slot only)
	CmdEliminate    -> EvtPlayerEliminated -> EvtGameWon (when the counts settle it)
	CmdRenamePlayer -> EvtPlayerRenamed
	CmdResolveGuess -> EvtGuessResolved -> EvtGameWon (correct guess only)
*/

type Command struct {
	Type    CommandType
	Slot    int
	Name    string
	Correct bool
}

type EventType string

const (
	EvtCardPicked       EventType = "CardPicked"
	EvtPickingCompleted EventType = "PickingCompleted"
	EvtPlayerEliminated EventType = "PlayerEliminated"
	EvtPlayerRenamed    EventType = "PlayerRenamed"
	EvtGuessResolved    EventType = "GuessResolved"
	EvtGameWon          EventType = "GameWon"
)

type Event struct {
	Type    EventType
	Slot    int
	Name    string
	Correct bool
	Outcome Outcome
}

// Apply validates cmd against s and returns the resulting events and the next
// session. s is never modified; on error the returned session is s.
func Apply(s Session, cmd Command) ([]Event, Session, error) {
	if !s.Active {
		return nil, s, ErrNoActiveSession
	}
	if cmd.Slot < 0 || cmd.Slot >= len(s.Players) {
		return nil, s, ErrSlotOutOfRange
	}

	slot := s.Players[cmd.Slot]

	switch cmd.Type {
	case CmdPickCard:
		if slot.Picked {
			return nil, s, ErrSlotAlreadyPicked
		}
		if s.AllPicked() {
			return nil, s, ErrPickingComplete
		}

		next := s.Clone()
		name := next.PickingOrder[next.CurrentPickerIndex]
		next.Players[cmd.Slot].Name = name
		next.Players[cmd.Slot].Picked = true
		next.CurrentPickerIndex++

		events := []Event{{Type: EvtCardPicked, Slot: cmd.Slot, Name: name}}
		if next.AllPicked() {
			events = append(events, Event{Type: EvtPickingCompleted})
		}
		return events, next, nil

	case CmdEliminate:
		if slot.Eliminated {
			return nil, s, ErrSlotAlreadyEliminated
		}
		if Result(s) != OutcomeNone {
			return nil, s, ErrGameOver
		}

		// Unpicked slots may be eliminated too; the caller decides what it offers.
		next := s.Clone()
		next.Players[cmd.Slot].Eliminated = true

		events := []Event{{Type: EvtPlayerEliminated, Slot: cmd.Slot, Name: slot.Name}}
		if won := EvaluateWinCondition(next); won != OutcomeNone {
			events = append(events, Event{Type: EvtGameWon, Outcome: won})
		}
		return events, next, nil

	case CmdRenamePlayer:
		if !slot.Picked {
			return nil, s, ErrSlotNotPicked
		}
		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			return nil, s, ErrInvalidName
		}

		next := s.Clone()
		next.Players[cmd.Slot].Name = name
		return []Event{{Type: EvtPlayerRenamed, Slot: cmd.Slot, Name: name}}, next, nil

	case CmdResolveGuess:
		switch {
		case !slot.Eliminated:
			return nil, s, ErrSlotNotEliminated
		case !slot.Role.Infiltrator():
			return nil, s, ErrNotInfiltrator
		case slot.Guessed:
			return nil, s, ErrAlreadyGuessed
		case s.Guesser != nil:
			return nil, s, ErrGameOver
		}

		next := s.Clone()
		next.Players[cmd.Slot].Guessed = true
		events := []Event{{Type: EvtGuessResolved, Slot: cmd.Slot, Name: slot.Name, Correct: cmd.Correct}}
		if cmd.Correct {
			guesser := cmd.Slot
			next.Guesser = &guesser
			events = append(events, Event{Type: EvtGameWon, Slot: cmd.Slot, Outcome: OutcomeGuesser})
		}
		return events, next, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// EvaluateWinCondition settles the round from live counts. The infiltrator
// check runs first: when civilians drop to one the infiltrators win even if
// none of them is left standing.
func EvaluateWinCondition(s Session) Outcome {
	if !s.Active {
		return OutcomeNone
	}

	civilians, infiltrators := 0, 0
	for _, p := range s.Players {
		if p.Eliminated {
			continue
		}
		if p.Role.Infiltrator() {
			infiltrators++
		} else {
			civilians++
		}
	}

	if civilians <= 1 {
		return OutcomeInfiltrators
	}
	if infiltrators == 0 {
		return OutcomeCivilians
	}
	return OutcomeNone
}
