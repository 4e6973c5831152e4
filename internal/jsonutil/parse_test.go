package jsonutil

import (
	"errors"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"unclosed fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"single line", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("StripMarkdownFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object in prose", `Here you go: {"text":"hi"} hope that helps {}`, `{"text":"hi"}`},
		{"array first", `[{"a":1}] and {"b":2}`, `[{"a":1}]`},
		{"brace inside string", `{"text":"a } b"}`, `{"text":"a } b"}`},
		{"escaped quote", `{"text":"say \"}\" now"}`, `{"text":"say \"}\" now"}`},
		{"nested", `x {"a":{"b":[1,2]}} y`, `{"a":{"b":[1,2]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONErrors(t *testing.T) {
	if _, err := ExtractJSON("no json here"); !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}
	if _, err := ExtractJSON(`{"a":1`); err == nil {
		t.Error("expected error for unterminated JSON")
	}
}

func TestParseJSON(t *testing.T) {
	type transcription struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	}

	got, err := ParseJSON[transcription]("```json\n{\"text\": \"STOP\", \"confidence\": 88}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "STOP" || got.Confidence != 88 {
		t.Errorf("unexpected result: %+v", got)
	}

	if _, err := ParseJSON[transcription](`{"text": 5}`); err == nil {
		t.Error("expected type mismatch error")
	}
	if _, err := ParseJSON[transcription]("nothing"); !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}
}
