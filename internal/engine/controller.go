package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/fairness"
	"github.com/DoyleJ11/undercover/internal/history"
	"github.com/DoyleJ11/undercover/internal/packs"
	"github.com/DoyleJ11/undercover/internal/words"
)

// WordSource produces a fresh pair when no pack is chosen. *llm.WordSource
// satisfies it.
type WordSource interface {
	RequestWordPair(ctx context.Context, mode words.Mode) (words.Pair, error)
}

// Archiver is implemented by word sources that keep what they generated.
type Archiver interface {
	Archive(mode words.Mode) words.Pack
}

// Engine owns the single live session and the memory of the previous one.
// It is not safe for concurrent use; the table actor serialises access.
type Engine struct {
	shuffler *fairness.Shuffler
	ledger   *history.Ledger
	packs    packs.Provider
	source   WordSource
	log      *zap.Logger
	now      func() time.Time
	newID    func() uuid.UUID

	session Session
	memory  fairness.Memory[Role]
}

type Option func(*Engine)

func WithShuffler(s *fairness.Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

func WithLedger(l *history.Ledger) Option {
	return func(e *Engine) { e.ledger = l }
}

func WithPacks(p packs.Provider) Option {
	return func(e *Engine) { e.packs = p }
}

// WithWordSource enables generated pairs for rounds without a pack.
func WithWordSource(src WordSource) Option {
	return func(e *Engine) { e.source = src }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMemory seeds the previous-session fingerprint.
func WithMemory(m fairness.Memory[Role]) Option {
	return func(e *Engine) { e.memory = m }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("engine")
	if e.shuffler == nil {
		e.shuffler = fairness.NewShuffler()
	}
	if e.ledger == nil {
		e.ledger = history.NewLedger(nil, history.WithLogger(e.log))
	}
	if e.packs == nil {
		e.packs = packs.Static{}
	}
	return e
}

// StartSession deals a new round and installs it as the only session,
// replacing any previous one. A bad config returns ErrInvalidConfig and leaves
// the current session alone. Word resolution never fails the start.
func (e *Engine) StartSession(ctx context.Context, cfg Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return Session{}, err
	}
	cfg.Mode = words.ParseMode(string(cfg.Mode))

	slots := fairness.SlotRoles(e.shuffler, cfg.Roles(), e.memory.SlotRoles, Role.Infiltrator)
	order := e.shuffler.TurnOrder(cfg.PickerNames(), e.memory.FirstPicker)

	pair, origin, packID := e.resolveWord(ctx, cfg)

	players := make([]Player, len(slots))
	for i, r := range slots {
		players[i] = Player{ID: i, Role: r}
	}

	s := Session{
		ID:               e.newID(),
		Active:           true,
		Players:          players,
		WordPair:         &pair,
		TotalUndercovers: cfg.Undercovers,
		TotalNoWord:      cfg.NoWord,
		PickingOrder:     order,
		Mode:             cfg.Mode,
		PackID:           packID,
		WordOrigin:       origin,
		StartedAt:        e.now().UTC(),
	}

	e.session = s
	e.memory = fairness.Remember(order, slots)

	e.log.Info("session started",
		zap.Stringer("session", s.ID),
		zap.Int("players", cfg.Players),
		zap.Int("undercovers", cfg.Undercovers),
		zap.Int("no_word", cfg.NoWord),
		zap.String("mode", string(cfg.Mode)),
		zap.String("word_origin", string(origin)),
		zap.String("pack", packID),
	)
	return s.Clone(), nil
}

// PickCard binds slot to whoever is next in the picking order and returns
// what that person sees. A slot already picked is ignored (ok=false).
func (e *Engine) PickCard(slot int) (Reveal, bool) {
	if _, err := e.apply(Command{Type: CmdPickCard, Slot: slot}); err != nil {
		return Reveal{}, false
	}
	return e.session.RevealFor(slot), true
}

// Eliminate marks slot as voted out and returns it. Repeats are ignored.
func (e *Engine) Eliminate(slot int) (Player, bool) {
	if _, err := e.apply(Command{Type: CmdEliminate, Slot: slot}); err != nil {
		return Player{}, false
	}
	return e.session.Players[slot], true
}

// RenamePlayer replaces the display name of a picked slot.
func (e *Engine) RenamePlayer(slot int, name string) error {
	_, err := e.apply(Command{Type: CmdRenamePlayer, Slot: slot, Name: name})
	return err
}

// ResolveGuess records the single guess an eliminated infiltrator gets. A
// correct guess wins the round for that slot.
func (e *Engine) ResolveGuess(slot int, correct bool) error {
	_, err := e.apply(Command{Type: CmdResolveGuess, Slot: slot, Correct: correct})
	return err
}

func (e *Engine) EvaluateWinCondition() Outcome {
	return EvaluateWinCondition(e.session)
}

// Outcome is EvaluateWinCondition with a correct guess taking precedence.
func (e *Engine) Outcome() Outcome {
	return Result(e.session)
}

// ResetSession clears the round. Fairness memory and word history are kept.
func (e *Engine) ResetSession() {
	if e.session.Active {
		e.log.Info("session reset", zap.Stringer("session", e.session.ID))
	}
	e.session = Session{}
}

// Session returns a copy of the live session.
func (e *Engine) Session() Session {
	return e.session.Clone()
}

// Memory returns the fingerprint the next deal will steer away from.
func (e *Engine) Memory() fairness.Memory[Role] {
	m := e.memory
	m.SlotRoles = append([]Role(nil), m.SlotRoles...)
	return m
}

func (e *Engine) ResetPackHistory(ctx context.Context, packID string) error {
	return e.ledger.ResetPackHistory(ctx, packID)
}

func (e *Engine) apply(cmd Command) ([]Event, error) {
	events, next, err := Apply(e.session, cmd)
	if err != nil {
		e.log.Debug("command ignored",
			zap.String("command", string(cmd.Type)),
			zap.Int("slot", cmd.Slot),
			zap.Error(err),
		)
		return nil, err
	}
	e.session = next
	for _, ev := range events {
		if ev.Type == EvtGameWon {
			e.log.Info("game won", zap.Stringer("session", next.ID), zap.String("outcome", string(ev.Outcome)))
		}
	}
	return events, nil
}
