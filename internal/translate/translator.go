// Package translate turns text into a translation through a chat-completion
// API. Translate never fails hard: upstream errors become a fallback result
// carrying the original text behind a visible "[FALLBACK] " marker, and only
// missing request fields are reported as invalid.
package translate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/metrics"
)

// FallbackPrefix marks a degraded translation. It is the only signal of
// degradation visible in the translation text itself.
const FallbackPrefix = "[FALLBACK] "

// MissingParametersMessage is returned to HTTP clients for invalid requests.
const MissingParametersMessage = "Missing required parameters. Please provide text and targetLanguage."

var (
	// ErrMissingAPIKey is returned when no chat-completion credential is configured.
	// There is no built-in default key; callers must fail closed.
	ErrMissingAPIKey = errors.New("GROQ_API_KEY is not configured")

	// ErrMissingParameters marks a request without text or target language.
	ErrMissingParameters = errors.New("missing text or targetLanguage")
)

// Request is a single translation request.
type Request struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage"`
}

// Result is the externally observed translation. Success is always true;
// Fallback reports whether the upstream failed and the text was substituted.
type Result struct {
	Translation    string `json:"translation"`
	Translated     string `json:"translated"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Success        bool   `json:"success"`
	Fallback       bool   `json:"fallback,omitempty"`
}

// OutcomeKind classifies how a translation call settled.
type OutcomeKind int

const (
	// OutcomeTranslated means the upstream returned a translation.
	OutcomeTranslated OutcomeKind = iota
	// OutcomeFallback means the upstream failed and the fallback text was used.
	OutcomeFallback
	// OutcomeInvalid means the request lacked text or a target language.
	OutcomeInvalid
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeTranslated:
		return "translated"
	case OutcomeFallback:
		return "fallback"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome is the result of Translate. Result is meaningful unless Kind is
// OutcomeInvalid. Cause holds the validation error or the upstream failure
// that triggered the fallback; it is for logs only and never serialized.
type Outcome struct {
	Kind   OutcomeKind
	Result Result
	Cause  error
}

// Translator builds prompts, calls the completer, and normalizes the output.
type Translator struct {
	completer Completer
	model     string
}

// New creates a Translator backed by Groq. It fails closed when cfg carries
// no API key.
func New(cfg config.Groq) (*Translator, error) {
	g, err := NewGroqCompleter(cfg)
	if err != nil {
		return nil, err
	}
	return &Translator{completer: g, model: g.Model()}, nil
}

// NewWithCompleter creates a Translator around an arbitrary completer.
func NewWithCompleter(c Completer) *Translator {
	return &Translator{completer: c}
}

// Validate checks the required request fields.
func (r Request) Validate() error {
	if r.Text == "" || r.TargetLanguage == "" {
		return ErrMissingParameters
	}
	return nil
}

// Translate performs one translation. It never returns an error value: the
// outcome kind says whether the request was invalid, translated, or degraded.
func (t *Translator) Translate(ctx context.Context, req Request) Outcome {
	if err := req.Validate(); err != nil {
		return Outcome{Kind: OutcomeInvalid, Cause: err}
	}

	source := req.SourceLanguage
	if source == "" {
		source = language.Auto
	}

	log.Debug().
		Str("source", source).
		Str("target", req.TargetLanguage).
		Int("text_length", len(req.Text)).
		Msg("Sending translation request")

	start := time.Now()
	raw, err := t.completer.Complete(ctx, SystemPrompt, BuildPrompt(req.Text, req.SourceLanguage, req.TargetLanguage))
	elapsed := time.Since(start)

	m := metrics.New(metrics.Namespace).
		Dimension("Operation", "translate").
		Duration("UpstreamLatencyMs", elapsed).
		Count("UpstreamCalls")
	if t.model != "" {
		m.Property("model", t.model)
	}

	if err != nil {
		m.Count("UpstreamErrors").Count("Fallbacks").Flush()
		log.Warn().
			Err(err).
			Str("target", req.TargetLanguage).
			Dur("elapsed", elapsed).
			Msg("Translation upstream failed, returning fallback")
		return Outcome{Kind: OutcomeFallback, Result: fallbackResult(req.Text, source, req.TargetLanguage), Cause: err}
	}
	m.Flush()

	translation := CleanCompletion(raw)
	log.Info().
		Str("source", source).
		Str("target", req.TargetLanguage).
		Int("translation_length", len(translation)).
		Dur("elapsed", elapsed).
		Msg("Translation complete")

	return Outcome{
		Kind: OutcomeTranslated,
		Result: Result{
			Translation:    translation,
			Translated:     translation,
			SourceLanguage: source,
			TargetLanguage: req.TargetLanguage,
			Success:        true,
		},
	}
}

func fallbackResult(text, source, target string) Result {
	fallback := FallbackPrefix + text
	return Result{
		Translation:    fallback,
		Translated:     fallback,
		SourceLanguage: source,
		TargetLanguage: target,
		Success:        true,
		Fallback:       true,
	}
}
