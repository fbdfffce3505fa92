// Package table runs the single game table: one goroutine owns the engine and
// every screen action reaches it as a message on one inbox.
package table

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/engine"
	"github.com/DoyleJ11/undercover/internal/guess"
)

var ErrClosed = errors.New("table closed")

type Msg interface{ isTableMsg() }

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this screen wants to receive snapshots
}

func (Join) isTableMsg() {}

type Leave struct{ ClientID string }

func (Leave) isTableMsg() {}

type Start struct {
	Config engine.Config
	Reply  chan StartResult
}

func (Start) isTableMsg() {}

type Pick struct {
	Slot  int
	Reply chan PickResult
}

func (Pick) isTableMsg() {}

type Eliminate struct {
	Slot  int
	Reply chan EliminateResult
}

func (Eliminate) isTableMsg() {}

type Guess struct {
	Slot  int
	Text  string
	Reply chan GuessResult
}

func (Guess) isTableMsg() {}

type Rename struct {
	Slot  int
	Name  string
	Reply chan error
}

func (Rename) isTableMsg() {}

type Reset struct {
	Reply chan View
}

func (Reset) isTableMsg() {}

type ResetPackHistory struct {
	PackID string
	Reply  chan error
}

func (ResetPackHistory) isTableMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

type Snapshot struct {
	Version int
	Session engine.Session
	Outcome engine.Outcome
	Phase   engine.Phase
}

type View struct {
	Version    int
	NumClients int
	Session    engine.Session
	Outcome    engine.Outcome
	Phase      engine.Phase
}

type StartResult struct {
	Session engine.Session
	Err     error
}

type PickResult struct {
	Reveal  engine.Reveal
	Applied bool
}

type EliminateResult struct {
	Player  engine.Player
	Applied bool
	Outcome engine.Outcome
}

type GuessResult struct {
	Result  guess.Result
	Applied bool
	Err     error
	Outcome engine.Outcome
}

type Table struct {
	inbox     chan Msg
	eng       *engine.Engine
	validator *guess.Validator
	log       *zap.Logger
	version   int
	clients   map[string]chan Snapshot
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// New starts the table loop. It stops on Shutdown or when parent is done.
func New(parent context.Context, eng *engine.Engine, validator *guess.Validator, log *zap.Logger) *Table {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	if validator == nil {
		validator = guess.NewValidator(nil, log)
	}

	t := &Table{
		inbox:     make(chan Msg, 64),
		eng:       eng,
		validator: validator,
		log:       log.Named("table"),
		clients:   make(map[string]chan Snapshot),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go t.loop()
	return t
}

func (t *Table) loop() {
	defer close(t.done)
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				// Register the screen and hand it the current state right away
				t.clients[msg.ClientID] = msg.Outbox
				t.send(msg.ClientID, msg.Outbox, t.snapshot())

			case Leave:
				delete(t.clients, msg.ClientID)

			case Start:
				// Word resolution may block on the network; nothing else is
				// processed until the new session is installed.
				s, err := t.eng.StartSession(t.ctx, msg.Config)
				if err == nil {
					t.changed()
				}
				reply(msg.Reply, StartResult{Session: s, Err: err})

			case Pick:
				rev, ok := t.eng.PickCard(msg.Slot)
				if ok {
					t.changed()
				}
				reply(msg.Reply, PickResult{Reveal: rev, Applied: ok})

			case Eliminate:
				p, ok := t.eng.Eliminate(msg.Slot)
				if ok {
					t.changed()
				}
				reply(msg.Reply, EliminateResult{Player: p, Applied: ok, Outcome: t.eng.Outcome()})

			case Guess:
				reply(msg.Reply, t.guess(msg.Slot, msg.Text))

			case Rename:
				err := t.eng.RenamePlayer(msg.Slot, msg.Name)
				if err == nil {
					t.changed()
				}
				reply(msg.Reply, err)

			case Reset:
				if t.eng.Session().Active {
					t.eng.ResetSession()
					t.changed()
				}
				reply(msg.Reply, t.view())

			case ResetPackHistory:
				reply(msg.Reply, t.eng.ResetPackHistory(t.ctx, msg.PackID))

			case GetState:
				reply(msg.Reply, t.view())

			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

func (t *Table) guess(slot int, text string) GuessResult {
	s := t.eng.Session()
	// Dry run first so an ineligible slot never costs a judge call.
	if _, _, err := engine.Apply(s, engine.Command{Type: engine.CmdResolveGuess, Slot: slot}); err != nil {
		return GuessResult{Err: err, Outcome: t.eng.Outcome()}
	}

	res := t.validator.Validate(t.ctx, text, s.WordPair.Civilian)
	if err := t.eng.ResolveGuess(slot, res.Correct); err != nil {
		return GuessResult{Result: res, Err: err, Outcome: t.eng.Outcome()}
	}
	t.changed()
	return GuessResult{Result: res, Applied: true, Outcome: t.eng.Outcome()}
}

func (t *Table) changed() {
	t.version++
	t.broadcast(t.snapshot())
}

func (t *Table) snapshot() Snapshot {
	s := t.eng.Session()
	return Snapshot{
		Version: t.version,
		Session: s,
		Outcome: engine.Result(s),
		Phase:   engine.DerivePhase(s),
	}
}

func (t *Table) view() View {
	snap := t.snapshot()
	return View{
		Version:    snap.Version,
		NumClients: len(t.clients),
		Session:    snap.Session,
		Outcome:    snap.Outcome,
		Phase:      snap.Phase,
	}
}

func (t *Table) shutdown() {
	for id, ch := range t.clients {
		close(ch) // no more snapshots for this screen
		delete(t.clients, id)
	}
	t.cancel()
}

func (t *Table) broadcast(snap Snapshot) {
	for id, ch := range t.clients {
		t.send(id, ch, snap)
	}
}

// send never blocks: a screen that cannot keep up is dropped.
func (t *Table) send(id string, ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
	default:
		t.log.Info("dropping slow screen", zap.String("client", id))
		close(ch)
		delete(t.clients, id)
	}
}

func reply[T any](ch chan T, v T) {
	if ch != nil {
		ch <- v
	}
}

// Inbox exposes the inbox so the HTTP and websocket layers can send messages.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Done is closed once the loop has exited.
func (t *Table) Done() <-chan struct{} { return t.done }

// Ask sends the message built around a fresh reply channel and waits for the
// answer, giving up when ctx ends or the table stops.
func Ask[T any](ctx context.Context, t *Table, build func(reply chan T) Msg) (T, error) {
	var zero T
	ch := make(chan T, 1)

	select {
	case t.inbox <- build(ch):
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.done:
		return zero, ErrClosed
	}

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.done:
		return zero, ErrClosed
	}
}
