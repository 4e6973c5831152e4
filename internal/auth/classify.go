package auth

import (
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// FailureType categorizes why a provider rejected a call.
type FailureType int

const (
	// FailureInvalidKey indicates the API key is invalid or revoked.
	FailureInvalidKey FailureType = iota
	// FailureQuota indicates the quota or rate limit was hit.
	FailureQuota
	// FailureNetwork indicates a connectivity or server-side problem.
	FailureNetwork
	// FailureUnknown is anything else.
	FailureUnknown
)

func (t FailureType) String() string {
	switch t {
	case FailureInvalidKey:
		return "invalid_key"
	case FailureQuota:
		return "quota"
	case FailureNetwork:
		return "network_error"
	default:
		return "unknown"
	}
}

// ProviderError is a classified provider failure with a user-facing message.
type ProviderError struct {
	Type    FailureType
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Classify maps a Groq (OpenAI-compatible) or Gemini error to a
// ProviderError. It returns nil for a nil error.
func Classify(err error) *ProviderError {
	if err == nil {
		return nil
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return classifyStatus(oaErr.StatusCode, oaErr.Message, err)
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return classifyStatus(gErr.Code, gErr.Message, err)
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return classifyStatus(gErrPtr.Code, gErrPtr.Message, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "api key not valid", "invalid api key", "api_key_invalid", "permission denied", "unauthorized"):
		return &ProviderError{Type: FailureInvalidKey, Message: "API key is invalid or has been revoked", Err: err}
	case containsAny(msg, "quota", "resource exhausted", "rate limit"):
		return &ProviderError{Type: FailureQuota, Message: "API quota exceeded or rate limited", Err: err}
	case containsAny(msg, "connection", "network", "timeout", "deadline exceeded", "dial", "no such host", "unreachable"):
		return &ProviderError{Type: FailureNetwork, Message: "Network error - check your internet connection", Err: err}
	default:
		return &ProviderError{Type: FailureUnknown, Message: "Provider call failed", Err: err}
	}
}

func classifyStatus(code int, message string, err error) *ProviderError {
	switch {
	case code == 400:
		return &ProviderError{Type: FailureInvalidKey, Message: "Bad request - API key may be malformed", Err: err}
	case code == 401 || code == 403:
		return &ProviderError{Type: FailureInvalidKey, Message: "API key is invalid, expired, or lacks permissions", Err: err}
	case code == 429:
		return &ProviderError{Type: FailureQuota, Message: "API rate limit exceeded - try again later", Err: err}
	case code >= 500:
		return &ProviderError{Type: FailureNetwork, Message: "Provider server error - try again later", Err: err}
	default:
		if message == "" {
			message = "Provider call failed"
		}
		return &ProviderError{Type: FailureUnknown, Message: message, Err: err}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
