package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/tidwall/gjson"
)

const (
	judgeTemp      = 0.1
	judgeMaxTokens = 100
	judgePrompt    = `You are a LENIENT word comparison judge for a party game. Be generous!

The player's guess: %q
The actual word: %q

ACCEPT the guess if it is an exact match ignoring case, has typos, is a very similar word,
is the same concept phrased differently, or sounds the same.
Only REJECT if the guess is completely unrelated or a totally different concept.

Respond with ONLY a JSON object (no markdown):
{"isCorrect": true/false, "reason": "brief explanation"}`
)

type Verdict struct {
	Correct bool
	Reason  string
}

// Judge asks the model whether a guess is close enough to the secret word.
type Judge struct {
	client *Client
}

func NewJudge(c *Client) *Judge {
	return &Judge{client: c}
}

// Judge returns an error only when the model could not be reached. An
// unreadable reply is a rejection.
func (j *Judge) Judge(ctx context.Context, guess, actual string) (Verdict, error) {
	reply, err := j.client.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(fmt.Sprintf(judgePrompt, guess, actual)),
	}, judgeTemp, judgeMaxTokens)
	if err != nil {
		return Verdict{}, err
	}
	return parseVerdict(reply), nil
}

func parseVerdict(reply string) Verdict {
	if obj, ok := extractObject(reply); ok {
		res := gjson.GetMany(obj, "isCorrect", "reason")
		v := Verdict{Correct: res[0].Type == gjson.True, Reason: strings.TrimSpace(res[1].String())}
		if v.Reason == "" {
			v.Reason = "Wrong guess."
			if v.Correct {
				v.Reason = "Correct!"
			}
		}
		return v
	}
	lower := strings.ToLower(reply)
	if strings.Contains(lower, `"iscorrect": true`) || strings.Contains(lower, `"iscorrect":true`) {
		return Verdict{Correct: true, Reason: "Correct!"}
	}
	return Verdict{Reason: "Could not verify guess."}
}
