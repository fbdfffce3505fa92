package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/words"
)

const (
	avoidWindow    = 40
	maxArchived    = 4000
	pairTemp       = 0.95
	pairMaxTokens  = 150
	archivePrefix  = "AI_ARCHIVE_"
	avoidPreamble  = "DO NOT use any of the following words or concepts, generate something completely new:\n"
	formatRule     = `RESPOND IN THIS EXACT JSON FORMAT ONLY: {"civilian": "word1", "undercover": "word2", "category": "category_name"}`
	generatorRules = `You are a word generator for the party game "Undercover". Your job is to generate pairs of similar but distinct words.
RULES:
1. Generate ONE word pair: a "civilian" word and a similar "undercover" word
2. The words must be related but distinguishable.
3. ` + formatRule
	standardTone = `TONE: Mature and Intelligent. Mix of cultures and global references.
- Good examples: "Narcissist / Confident", "Democracy / Dictatorship", "Love / Obsession"
- Good examples: "Karachi / Mumbai", "Dubai / Doha"`
	matureTone = `TONE: Edgy, Mature, and Taboo. Focus on relationship drama, dark humor and adult themes (without being pornographic).
- Good examples: "Infidelity / Flirting", "Divorce / Breakup", "Bribery / Gift", "Secret / Scandal"`
)

type archived struct {
	mode words.Mode
	pair words.Pair
}

// WordSource generates fresh pairs and remembers every pair it produced so
// later prompts can steer away from them.
type WordSource struct {
	client *Client
	now    func() time.Time
	log    *zap.Logger

	mu      sync.Mutex
	archive []archived
}

type WordSourceOption func(*WordSource)

func WithClock(now func() time.Time) WordSourceOption {
	return func(s *WordSource) { s.now = now }
}

func NewWordSource(c *Client, opts ...WordSourceOption) *WordSource {
	s := &WordSource{client: c, now: time.Now, log: c.log.Named("words")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ArchivePackID names the pack formed by previously generated pairs of a mode.
func ArchivePackID(mode words.Mode) string {
	return archivePrefix + strings.ToUpper(string(mode))
}

// RequestWordPair asks the model for a new pair. ErrQuota is returned without
// retrying; other failures are retried up to the configured attempt count.
// A pair whose civilian or undercover word was generated before is rejected
// with ErrDuplicate.
func (s *WordSource) RequestWordPair(ctx context.Context, mode words.Mode) (words.Pair, error) {
	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt(mode)),
		openai.UserMessage(s.userPrompt(mode)),
	}

	var lastErr error
	for attempt := 1; attempt <= s.client.retries; attempt++ {
		pair, err := s.attempt(ctx, msgs)
		if err == nil {
			return s.accept(mode, pair)
		}
		lastErr = err
		if errors.Is(err, ErrQuota) || ctx.Err() != nil {
			break
		}
		s.log.Debug("pair attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}
	return words.Pair{}, lastErr
}

func (s *WordSource) attempt(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion) (words.Pair, error) {
	reply, err := s.client.complete(ctx, msgs, pairTemp, pairMaxTokens)
	if err != nil {
		return words.Pair{}, err
	}
	obj, ok := extractObject(reply)
	if !ok {
		return words.Pair{}, fmt.Errorf("%w: no json object", ErrMalformedReply)
	}
	fields := gjson.GetMany(obj, "civilian", "undercover", "category")
	pair := words.Pair{
		Civilian:   strings.TrimSpace(fields[0].String()),
		Undercover: strings.TrimSpace(fields[1].String()),
		Category:   strings.TrimSpace(fields[2].String()),
	}
	if !pair.Valid() {
		return words.Pair{}, fmt.Errorf("%w: missing word fields", ErrMalformedReply)
	}
	if pair.Category == "" {
		pair.Category = "General"
	}
	return pair, nil
}

func (s *WordSource) accept(mode words.Mode, pair words.Pair) (words.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.archive {
		if strings.EqualFold(a.pair.Civilian, pair.Civilian) || strings.EqualFold(a.pair.Undercover, pair.Undercover) {
			return words.Pair{}, ErrDuplicate
		}
	}
	pair.ID = strconv.FormatInt(s.now().UnixNano(), 10)
	s.archive = append(s.archive, archived{mode: mode, pair: pair})
	if len(s.archive) > maxArchived {
		s.archive = s.archive[len(s.archive)-maxArchived:]
	}
	return pair, nil
}

// Archive returns the previously generated pairs of a mode as a pack.
func (s *WordSource) Archive(mode words.Mode) words.Pack {
	s.mu.Lock()
	defer s.mu.Unlock()

	pack := words.Pack{ID: ArchivePackID(mode), Name: "Generated " + string(mode)}
	for _, a := range s.archive {
		if a.mode == mode {
			pack.Words = append(pack.Words, a.pair)
		}
	}
	return pack
}

func (s *WordSource) userPrompt(mode words.Mode) string {
	tone := "standard"
	if mode == words.ModeMature {
		tone = "edgy/mature"
	}
	prompt := fmt.Sprintf("Generate a new %s word pair for the Undercover game.", tone)

	s.mu.Lock()
	recent := s.archive
	if len(recent) > avoidWindow {
		recent = recent[len(recent)-avoidWindow:]
	}
	avoid := make([]string, 0, len(recent))
	for _, a := range recent {
		avoid = append(avoid, a.pair.Civilian+", "+a.pair.Undercover)
	}
	s.mu.Unlock()

	if len(avoid) > 0 {
		prompt += "\n" + avoidPreamble + strings.Join(avoid, ", ")
	}
	return prompt
}

func systemPrompt(mode words.Mode) string {
	if mode == words.ModeMature {
		return generatorRules + "\n" + matureTone
	}
	return generatorRules + "\n" + standardTone
}
