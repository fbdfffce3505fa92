package types

// TableSnapshot is what every screen sees. Roles stay hidden until a player
// is eliminated or the round is over; the words are shown only at the end.
//
//	version: number
//	phase: "idle" | "picking" | "discussion" | "voting" | "done"
//	outcome: "none" | "civilians" | "infiltrators" | "guesser"
//	players: PlayerView[] (card slot order)
//	pickingOrder: string[]
//	currentPicker: string ("" once everyone has picked)
type TableSnapshot struct {
	Version            int          `json:"version"`
	Phase              string       `json:"phase"`
	Outcome            string       `json:"outcome"`
	Active             bool         `json:"active"`
	SessionID          string       `json:"sessionId,omitempty"`
	Mode               string       `json:"mode,omitempty"`
	Players            []PlayerView `json:"players"`
	PickingOrder       []string     `json:"pickingOrder"`
	CurrentPicker      string       `json:"currentPicker,omitempty"`
	CurrentPickerIndex int          `json:"currentPickerIndex"`
	TotalUndercovers   int          `json:"totalUndercovers"`
	TotalNoWord        int          `json:"totalNoWord"`
	Guesser            *int         `json:"guesser,omitempty"`
	Words              *WordsView   `json:"words,omitempty"`
}

type PlayerView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Picked     bool   `json:"picked"`
	Eliminated bool   `json:"eliminated"`
	Role       string `json:"role,omitempty"`
}

type WordsView struct {
	Civilian   string `json:"civilian"`
	Undercover string `json:"undercover"`
	Category   string `json:"category,omitempty"`
}
