package types

import (
	"github.com/DoyleJ11/undercover/internal/engine"
	wire "github.com/DoyleJ11/undercover/pkg/types"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Slot  *int   `json:"slot,omitempty"`
	Name  string `json:"name,omitempty"`
	Guess string `json:"guess,omitempty"`
}

type ServerMessage struct {
	Type    string              `json:"type"` // "StateSnapshot" | "Reveal" | "GuessResult" | "Error"
	Version int                 `json:"version,omitempty"`
	State   *wire.TableSnapshot `json:"state,omitempty"`
	Reveal  *wire.Reveal        `json:"reveal,omitempty"`
	Guess   *wire.GuessResult   `json:"guess,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Snapshot redacts s for the shared screen.
func Snapshot(version int, s engine.Session) wire.TableSnapshot {
	outcome := engine.Result(s)
	over := outcome != engine.OutcomeNone

	snap := wire.TableSnapshot{
		Version:            version,
		Phase:              string(engine.DerivePhase(s)),
		Outcome:            string(outcome),
		Active:             s.Active,
		Mode:               string(s.Mode),
		Players:            make([]wire.PlayerView, 0, len(s.Players)),
		PickingOrder:       append([]string{}, s.PickingOrder...),
		CurrentPicker:      s.CurrentPicker(),
		CurrentPickerIndex: s.CurrentPickerIndex,
		TotalUndercovers:   s.TotalUndercovers,
		TotalNoWord:        s.TotalNoWord,
	}
	if s.Active {
		snap.SessionID = s.ID.String()
	}
	for _, p := range s.Players {
		v := wire.PlayerView{ID: p.ID, Name: p.Name, Picked: p.Picked, Eliminated: p.Eliminated}
		if p.Eliminated || over {
			v.Role = string(p.Role)
		}
		snap.Players = append(snap.Players, v)
	}
	if over {
		if s.Guesser != nil {
			g := *s.Guesser
			snap.Guesser = &g
		}
		if s.WordPair != nil {
			snap.Words = &wire.WordsView{
				Civilian:   s.WordPair.Civilian,
				Undercover: s.WordPair.Undercover,
				Category:   s.WordPair.Category,
			}
		}
	}
	return snap
}

func Reveal(r engine.Reveal) wire.Reveal {
	return wire.Reveal{Slot: r.Slot, Name: r.Name, Role: string(r.Role), Word: r.Word}
}

func StateMessage(version int, s engine.Session) ServerMessage {
	snap := Snapshot(version, s)
	return ServerMessage{Type: "StateSnapshot", Version: version, State: &snap}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: "Error", Error: err.Error()}
}
