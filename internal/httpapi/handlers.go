package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DoyleJ11/undercover/internal/engine"
	"github.com/DoyleJ11/undercover/internal/packs"
	"github.com/DoyleJ11/undercover/internal/table"
	"github.com/DoyleJ11/undercover/internal/types"
	"github.com/DoyleJ11/undercover/internal/words"
	wire "github.com/DoyleJ11/undercover/pkg/types"
)

const maxBody = 64 << 10

type startRequest struct {
	Players     int      `json:"players"`
	Undercovers int      `json:"undercovers"`
	NoWord      int      `json:"noWord"`
	Names       []string `json:"names"`
	Mode        string   `json:"mode"`
	PackID      string   `json:"packId"`
}

type slotRequest struct {
	Slot  *int   `json:"slot"`
	Name  string `json:"name"`
	Guess string `json:"guess"`
}

type sessionResponse struct {
	Version int                `json:"version"`
	State   wire.TableSnapshot `json:"state"`
}

type actionResponse struct {
	Applied bool          `json:"applied"`
	Error   string        `json:"error,omitempty"`
	Reveal  *wire.Reveal  `json:"reveal,omitempty"`
	Player  *playerResult `json:"player,omitempty"`
	Outcome string        `json:"outcome,omitempty"`
}

type packsResponse struct {
	Packs []string `json:"packs"`
}

type playerResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func GetSession(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := table.Ask(r.Context(), tb, func(c chan table.View) table.Msg { return table.GetState{Reply: c} })
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Version: view.Version, State: types.Snapshot(view.Version, view.Session)})
	}
}

func StartSession(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if !decode(w, r, &req) {
			return
		}
		cfg := engine.Config{
			Players:     req.Players,
			Undercovers: req.Undercovers,
			NoWord:      req.NoWord,
			Names:       req.Names,
			Mode:        words.ParseMode(req.Mode),
			PackID:      req.PackID,
		}
		if err := cfg.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		res, err := table.Ask(r.Context(), tb, func(c chan table.StartResult) table.Msg {
			return table.Start{Config: cfg, Reply: c}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if errors.Is(res.Err, engine.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, res.Err)
			return
		}
		if res.Err != nil {
			writeError(w, http.StatusInternalServerError, res.Err)
			return
		}

		view, err := table.Ask(r.Context(), tb, func(c chan table.View) table.Msg { return table.GetState{Reply: c} })
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{Version: view.Version, State: types.Snapshot(view.Version, view.Session)})
	}
}

func ResetSession(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := table.Ask(r.Context(), tb, func(c chan table.View) table.Msg { return table.Reset{Reply: c} })
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Version: view.Version, State: types.Snapshot(view.Version, view.Session)})
	}
}

func PickCard(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := decodeSlot(w, r, nil)
		if !ok {
			return
		}
		res, err := table.Ask(r.Context(), tb, func(c chan table.PickResult) table.Msg { return table.Pick{Slot: slot, Reply: c} })
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		out := actionResponse{Applied: res.Applied}
		if res.Applied {
			rev := types.Reveal(res.Reveal)
			out.Reveal = &rev
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func Eliminate(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, ok := decodeSlot(w, r, nil)
		if !ok {
			return
		}
		res, err := table.Ask(r.Context(), tb, func(c chan table.EliminateResult) table.Msg {
			return table.Eliminate{Slot: slot, Reply: c}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		out := actionResponse{Applied: res.Applied, Outcome: string(res.Outcome)}
		if res.Applied {
			out.Player = &playerResult{ID: res.Player.ID, Name: res.Player.Name, Role: string(res.Player.Role)}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func SubmitGuess(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slotRequest
		slot, ok := decodeSlot(w, r, &req)
		if !ok {
			return
		}
		res, err := table.Ask(r.Context(), tb, func(c chan table.GuessResult) table.Msg {
			return table.Guess{Slot: slot, Text: req.Guess, Reply: c}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		out := wire.GuessResult{
			Correct: res.Result.Correct,
			Applied: res.Applied,
			Message: res.Result.Message,
			Outcome: string(res.Outcome),
		}
		if res.Err != nil {
			out.Message = res.Err.Error()
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func RenamePlayer(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slotRequest
		slot, ok := decodeSlot(w, r, &req)
		if !ok {
			return
		}
		renameErr, err := table.Ask(r.Context(), tb, func(c chan error) table.Msg {
			return table.Rename{Slot: slot, Name: req.Name, Reply: c}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if errors.Is(renameErr, engine.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, renameErr)
			return
		}
		out := actionResponse{Applied: renameErr == nil}
		if renameErr != nil {
			out.Error = renameErr.Error()
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ResetPackHistory(tb *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packID := chi.URLParam(r, "packId")
		resetErr, err := table.Ask(r.Context(), tb, func(c chan error) table.Msg {
			return table.ResetPackHistory{PackID: packID, Reply: c}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if resetErr != nil {
			writeError(w, http.StatusInternalServerError, resetErr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListPacks(catalog packs.Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := catalog.IDs()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, packsResponse{Packs: ids})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

// decodeSlot reads a body carrying a slot. req may be nil when only the slot
// matters.
func decodeSlot(w http.ResponseWriter, r *http.Request, req *slotRequest) (int, bool) {
	if req == nil {
		req = &slotRequest{}
	}
	if !decode(w, r, req) {
		return 0, false
	}
	if req.Slot == nil {
		writeError(w, http.StatusBadRequest, errors.New("slot is required"))
		return 0, false
	}
	return *req.Slot, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
