// Package config resolves runtime settings from environment variables.
//
// Every binary calls Load once at startup; cobra flags then override
// individual fields. Secrets are read here but never logged.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultGroqBaseURL is Groq's OpenAI-compatible API root.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1/"

	// DefaultGroqModel is the small open-weight model used for translation.
	DefaultGroqModel = "llama3-8b-8192"

	// DefaultTranslateTimeout bounds a single chat-completion call. It is a
	// fixed policy and has no environment override.
	DefaultTranslateTimeout = 15 * time.Second

	// DefaultOCREngine is the local Tesseract backend with word boxes.
	DefaultOCREngine = "tesseract"

	// DefaultOCRLanguage is the single trained-data model handed to Tesseract.
	DefaultOCRLanguage = "eng"

	// DefaultOCRRemoteURL is the local OCR server the remote backend delegates to.
	DefaultOCRRemoteURL = "http://localhost:5000"

	// DefaultGeminiModel is used by the Gemini vision OCR backend.
	DefaultGeminiModel = "gemini-2.5-flash"

	// DefaultSSMGroqKeyParam is where the Lambda looks for the Groq key.
	DefaultSSMGroqKeyParam = "/polylingo/prod/groq-api-key"

	// DefaultPort matches the original local server.
	DefaultPort = 5000
)

// Groq holds chat-completion settings.
type Groq struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OCR holds extractor settings.
type OCR struct {
	Engine    string
	Language  string
	RemoteURL string
}

// Gemini holds settings for the Gemini vision backend.
type Gemini struct {
	APIKey string
	Model  string
}

// Config is the resolved runtime configuration.
type Config struct {
	Groq            Groq
	OCR             OCR
	Gemini          Gemini
	Port            int
	SSMGroqKeyParam string
}

// Load reads the configuration from the environment. Only malformed values
// produce an error; missing values take their defaults. A missing API key is
// not an error here: the translator refuses to start without one.
func Load() (Config, error) {
	cfg := Config{
		Groq: Groq{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: envOrDefault("GROQ_BASE_URL", DefaultGroqBaseURL),
			Model:   envOrDefault("GROQ_MODEL", DefaultGroqModel),
			Timeout: DefaultTranslateTimeout,
		},
		OCR: OCR{
			Engine:    NormalizeEngine(envOrDefault("OCR_ENGINE", DefaultOCREngine)),
			Language:  envOrDefault("OCR_LANGUAGE", DefaultOCRLanguage),
			RemoteURL: envOrDefault("OCR_REMOTE_URL", DefaultOCRRemoteURL),
		},
		Gemini: Gemini{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  envOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		},
		Port:            DefaultPort,
		SSMGroqKeyParam: envOrDefault("SSM_GROQ_KEY_PARAM", DefaultSSMGroqKeyParam),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// NormalizeEngine folds an OCR engine name to the lowercase form the
// backends are registered under.
func NormalizeEngine(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// EngineIs reports whether the configured engine is name, ignoring case and
// surrounding space.
func (o OCR) EngineIs(name string) bool {
	return NormalizeEngine(o.Engine) == name
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
