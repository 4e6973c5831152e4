package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/fpang/polylingo/internal/config"
)

// Fixed sampling policy: literal, low-creativity translations.
const (
	temperature = 0.3
	maxTokens   = 1000
	topP        = 0.9
)

// Completer sends one system + user message pair to a chat-completion API
// and returns the raw text of the first choice.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GroqCompleter calls Groq's OpenAI-compatible chat-completion endpoint.
type GroqCompleter struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewGroqCompleter builds a completer from cfg. The SDK's own retry loop is
// disabled: a failed call goes straight to the fallback path.
func NewGroqCompleter(cfg config.Groq) (*GroqCompleter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTranslateTimeout
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultGroqModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultGroqBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	)
	return &GroqCompleter{client: client, model: model, timeout: timeout}, nil
}

// Model returns the model identifier sent upstream.
func (g *GroqCompleter) Model() string {
	return g.model
}

// Complete implements Completer.
func (g *GroqCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
		TopP:        openai.Float(topP),
	})
	if err != nil {
		return "", mapUpstreamError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// UpstreamError is a non-2xx reply from the chat-completion API. It keeps
// the SDK error reachable through errors.As.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("chat completion failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("chat completion failed (status %d)", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func mapUpstreamError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.StatusCode, Message: apiErr.Message, Err: err}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
