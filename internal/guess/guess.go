// Package guess decides whether an eliminated infiltrator named the civilian
// word.
package guess

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DoyleJ11/undercover/internal/llm"
)

// Judge is a lenient, typo-tolerant comparison. *llm.Judge satisfies it.
type Judge interface {
	Judge(ctx context.Context, guess, actual string) (llm.Verdict, error)
}

type Result struct {
	Correct   bool   `json:"correct"`
	UsedJudge bool   `json:"usedJudge"`
	Message   string `json:"message"`
}

type Validator struct {
	judge Judge
	log   *zap.Logger
}

// NewValidator builds a validator. With a nil judge every guess is compared
// by normalized exact match.
func NewValidator(judge Judge, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{judge: judge, log: log.Named("guess")}
}

func (v *Validator) Validate(ctx context.Context, guess, actual string) Result {
	g, a := Normalize(guess), Normalize(actual)
	switch {
	case g == "":
		return Result{Message: "Empty guess."}
	case g == a:
		return Result{Correct: true, Message: "Correct!"}
	case v.judge == nil:
		return Result{Message: "Wrong guess. (exact match only)"}
	}

	verdict, err := v.judge.Judge(ctx, guess, actual)
	if err != nil {
		v.log.Warn("judge unavailable, using exact match", zap.Error(err))
		return Result{Message: "Wrong guess. (judge unavailable, exact match used)"}
	}
	return Result{Correct: verdict.Correct, UsedJudge: true, Message: verdict.Reason}
}

// Normalize trims, case folds, strips diacritics and collapses inner
// whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}
