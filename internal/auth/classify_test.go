package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestClassifyNil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassifyGeminiAPIError(t *testing.T) {
	tests := []struct {
		code int
		want FailureType
	}{
		{400, FailureInvalidKey},
		{401, FailureInvalidKey},
		{403, FailureInvalidKey},
		{429, FailureQuota},
		{503, FailureNetwork},
		{404, FailureUnknown},
	}
	for _, tt := range tests {
		err := fmt.Errorf("generate: %w", genai.APIError{Code: tt.code, Message: "nope"})
		got := Classify(err)
		if got.Type != tt.want {
			t.Errorf("code %d: got %s, want %s", tt.code, got.Type, tt.want)
		}
		if !errors.Is(got, err) && got.Err != err {
			t.Errorf("code %d: original error not kept", tt.code)
		}
	}
}

func TestClassifyMessages(t *testing.T) {
	tests := []struct {
		err  error
		want FailureType
	}{
		{errors.New("API key not valid. Please pass a valid API key."), FailureInvalidKey},
		{errors.New("Resource exhausted"), FailureQuota},
		{errors.New("dial tcp: lookup api.groq.com: no such host"), FailureNetwork},
		{context.DeadlineExceeded, FailureNetwork},
		{errors.New("something odd"), FailureUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got.Type != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.err, got.Type, tt.want)
		}
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	base := errors.New("root cause")
	pe := &ProviderError{Type: FailureUnknown, Message: "wrapped", Err: base}
	if !errors.Is(pe, base) {
		t.Error("ProviderError should unwrap to its cause")
	}
	if pe.Error() != "wrapped: root cause" {
		t.Errorf("unexpected message %q", pe.Error())
	}
}
