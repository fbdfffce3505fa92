package types

// Reveal goes only to the screen that picked the slot.
type Reveal struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
	Role string `json:"role"`
	Word string `json:"word,omitempty"`
}

type GuessResult struct {
	Correct bool   `json:"correct"`
	Applied bool   `json:"applied"`
	Message string `json:"message"`
	Outcome string `json:"outcome"`
}

// Client -> Server (websocket)
// PickCard:     { "type": "PickCard", "slot": number }
// Eliminate:    { "type": "Eliminate", "slot": number }
// RenamePlayer: { "type": "RenamePlayer", "slot": number, "name": string }
// Guess:        { "type": "Guess", "slot": number, "guess": string }
//
// Server -> Client
// StateSnapshot: { "type": "StateSnapshot", "version": number, "state": TableSnapshot }
// Reveal:        { "type": "Reveal", "reveal": Reveal }
// GuessResult:   { "type": "GuessResult", "guess": GuessResult }
// Ack:           { "type": "Ack" }
// Error:         { "type": "Error", "error": string }
