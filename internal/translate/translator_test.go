package translate

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.SetOutput(io.Discard)
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// fakeCompleter records the prompts it receives and replays a canned reply.
type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.reply, f.err
}

func TestTranslateSuccess(t *testing.T) {
	fc := &fakeCompleter{reply: `"Bonjour"`}
	tr := NewWithCompleter(fc)

	out := tr.Translate(context.Background(), Request{Text: "Hello", SourceLanguage: "en", TargetLanguage: "fr"})

	if out.Kind != OutcomeTranslated {
		t.Fatalf("expected translated outcome, got %s (cause: %v)", out.Kind, out.Cause)
	}
	r := out.Result
	if r.Translation != "Bonjour" || r.Translated != "Bonjour" {
		t.Errorf("expected Bonjour in both fields, got %q / %q", r.Translation, r.Translated)
	}
	if !r.Success || r.Fallback {
		t.Errorf("expected success without fallback, got %+v", r)
	}
	if r.SourceLanguage != "en" || r.TargetLanguage != "fr" {
		t.Errorf("unexpected languages: %+v", r)
	}
	if fc.system != SystemPrompt {
		t.Errorf("unexpected system prompt: %q", fc.system)
	}
	if fc.user != "Translate the following English text to French:\n\n\"Hello\"" {
		t.Errorf("unexpected user prompt: %q", fc.user)
	}
}

func TestTranslateDefaultsSourceToAuto(t *testing.T) {
	fc := &fakeCompleter{reply: "Hola"}
	out := NewWithCompleter(fc).Translate(context.Background(), Request{Text: "Hello", TargetLanguage: "es"})

	if out.Result.SourceLanguage != "auto" {
		t.Errorf("expected sourceLanguage auto, got %q", out.Result.SourceLanguage)
	}
	if !strings.HasPrefix(fc.user, "Translate the following text to Spanish:") {
		t.Errorf("expected auto phrasing, got %q", fc.user)
	}
}

func TestTranslateInvalid(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing text", Request{TargetLanguage: "es"}},
		{"missing target", Request{Text: "Hello"}},
		{"missing both", Request{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{reply: "unused"}
			out := NewWithCompleter(fc).Translate(context.Background(), tt.req)

			if out.Kind != OutcomeInvalid {
				t.Fatalf("expected invalid outcome, got %s", out.Kind)
			}
			if !errors.Is(out.Cause, ErrMissingParameters) {
				t.Errorf("expected ErrMissingParameters, got %v", out.Cause)
			}
			if fc.calls != 0 {
				t.Errorf("invalid requests must not reach the upstream, got %d calls", fc.calls)
			}
		})
	}
}

func TestTranslateFallback(t *testing.T) {
	upstreamErr := errors.New("connection reset")
	fc := &fakeCompleter{err: upstreamErr}

	out := NewWithCompleter(fc).Translate(context.Background(), Request{Text: "Where is the station?", TargetLanguage: "ja"})

	if out.Kind != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", out.Kind)
	}
	if !errors.Is(out.Cause, upstreamErr) {
		t.Errorf("expected cause to be kept, got %v", out.Cause)
	}
	r := out.Result
	if r.Translation != "[FALLBACK] Where is the station?" {
		t.Errorf("unexpected fallback translation: %q", r.Translation)
	}
	if r.Translated != r.Translation {
		t.Errorf("translated should duplicate translation, got %q", r.Translated)
	}
	if !r.Success || !r.Fallback {
		t.Errorf("fallback must report success and fallback, got %+v", r)
	}
	if r.SourceLanguage != "auto" || r.TargetLanguage != "ja" {
		t.Errorf("unexpected languages: %+v", r)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(config.Groq{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestOutcomeKindString(t *testing.T) {
	for kind, want := range map[OutcomeKind]string{
		OutcomeTranslated: "translated",
		OutcomeFallback:   "fallback",
		OutcomeInvalid:    "invalid",
		OutcomeKind(42):   "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
