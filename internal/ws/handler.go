package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/DoyleJ11/undercover/internal/table"
	"github.com/DoyleJ11/undercover/internal/types"
	wire "github.com/DoyleJ11/undercover/pkg/types"
)

const (
	writeTimeout = 3 * time.Second
	readTimeout  = 5 * time.Minute
	askTimeout   = 30 * time.Second
)

var errUnknownType = errors.New("unknown type")
var errMissingSlot = errors.New("missing slot")

// Handler streams table snapshots to a screen and accepts game actions from it.
func Handler(tb *table.Table, log *zap.Logger) http.HandlerFunc {
	log = log.Named("ws")
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan table.Snapshot, 8)
		clientID := uuid.NewString()

		select {
		case tb.Inbox() <- table.Join{ClientID: clientID, Outbox: out}:
		case <-tb.Done():
			conn.Close(websocket.StatusGoingAway, "table closed")
			return
		}
		defer func() {
			select {
			case tb.Inbox() <- table.Leave{ClientID: clientID}:
			case <-tb.Done():
			}
		}()
		log.Debug("screen joined", zap.String("client", clientID))

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case snap, ok := <-out:
					if !ok {
						// dropped as too slow, or the table stopped
						conn.Close(websocket.StatusGoingAway, "no more updates")
						return
					}
					write(writeCtx, conn, types.StateMessage(snap.Version, snap.Session))
				case <-writeCtx.Done():
					return
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			var cm types.ClientMessage
			err := wsjson.Read(ctx, conn, &cm)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read ended", zap.String("client", clientID), zap.Error(err))
				}
				return
			}

			write(r.Context(), conn, handle(r.Context(), tb, cm))
		}
	}
}

func handle(ctx context.Context, tb *table.Table, cm types.ClientMessage) types.ServerMessage {
	if cm.Slot == nil {
		return types.ErrorMessage(errMissingSlot)
	}
	slot := *cm.Slot

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	switch cm.Type {
	case "PickCard":
		res, err := table.Ask(ctx, tb, func(r chan table.PickResult) table.Msg { return table.Pick{Slot: slot, Reply: r} })
		if err != nil {
			return types.ErrorMessage(err)
		}
		if !res.Applied {
			return types.ServerMessage{Type: "Error", Error: "slot already picked"}
		}
		rev := types.Reveal(res.Reveal)
		return types.ServerMessage{Type: "Reveal", Reveal: &rev}

	case "Eliminate":
		res, err := table.Ask(ctx, tb, func(r chan table.EliminateResult) table.Msg { return table.Eliminate{Slot: slot, Reply: r} })
		if err != nil {
			return types.ErrorMessage(err)
		}
		if !res.Applied {
			return types.ServerMessage{Type: "Error", Error: "slot cannot be eliminated"}
		}
		return types.ServerMessage{Type: "Ack"}

	case "RenamePlayer":
		err, askErr := table.Ask(ctx, tb, func(r chan error) table.Msg { return table.Rename{Slot: slot, Name: cm.Name, Reply: r} })
		if askErr != nil {
			return types.ErrorMessage(askErr)
		}
		if err != nil {
			return types.ErrorMessage(err)
		}
		return types.ServerMessage{Type: "Ack"}

	case "Guess":
		res, err := table.Ask(ctx, tb, func(r chan table.GuessResult) table.Msg {
			return table.Guess{Slot: slot, Text: cm.Guess, Reply: r}
		})
		if err != nil {
			return types.ErrorMessage(err)
		}
		if res.Err != nil {
			return types.ErrorMessage(res.Err)
		}
		return types.ServerMessage{Type: "GuessResult", Guess: &wire.GuessResult{
			Correct: res.Result.Correct,
			Applied: res.Applied,
			Message: res.Result.Message,
			Outcome: string(res.Outcome),
		}}

	default:
		return types.ErrorMessage(errUnknownType)
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = wsjson.Write(ctx, conn, msg)
}
