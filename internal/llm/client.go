// Package llm talks to an OpenAI-compatible chat completion endpoint (Groq by
// default) to generate word pairs and to judge eliminated-player guesses.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured  = errors.New("llm: api key not configured")
	ErrQuota          = errors.New("llm: quota exceeded")
	ErrMalformedReply = errors.New("llm: malformed reply")
	ErrDuplicate      = errors.New("llm: duplicate pair")
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1/"
	DefaultModel   = "llama-3.1-8b-instant"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	Retries    int
	HTTPClient *http.Client
}

// Client is a thin wrapper over the chat completions API. It is safe for
// concurrent use.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
	retries int
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		// attempts are counted here, not inside the SDK
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		api:     openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		retries: cfg.Retries,
		log:     log.Named("llm"),
	}, nil
}

func (c *Client) complete(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion, temperature float64, maxTokens int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedReply)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedReply)
	}
	return content, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	text := strings.ToLower(apiErr.Error())
	if apiErr.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(text, "quota") ||
		strings.Contains(text, "rate limit") {
		return fmt.Errorf("%w: status %d", ErrQuota, apiErr.StatusCode)
	}
	return fmt.Errorf("llm: status %d: %w", apiErr.StatusCode, err)
}

// extractObject returns the outermost {...} span of a model reply when it is
// valid JSON. Models like to wrap answers in prose or code fences.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	obj := text[start : end+1]
	if !gjson.Valid(obj) {
		return "", false
	}
	return obj, true
}
