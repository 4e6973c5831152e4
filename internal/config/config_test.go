package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GROQ_API_KEY", "GROQ_BASE_URL", "GROQ_MODEL",
		"OCR_ENGINE", "OCR_LANGUAGE", "OCR_REMOTE_URL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "PORT", "SSM_GROQ_KEY_PARAM",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Groq.APIKey != "" {
		t.Errorf("expected no default API key, got %q", cfg.Groq.APIKey)
	}
	if cfg.Groq.BaseURL != DefaultGroqBaseURL {
		t.Errorf("expected base URL %q, got %q", DefaultGroqBaseURL, cfg.Groq.BaseURL)
	}
	if cfg.Groq.Model != DefaultGroqModel {
		t.Errorf("expected model %q, got %q", DefaultGroqModel, cfg.Groq.Model)
	}
	if cfg.Groq.Timeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.Groq.Timeout)
	}
	if cfg.OCR.Engine != "tesseract" || cfg.OCR.Language != "eng" {
		t.Errorf("unexpected OCR defaults: %+v", cfg.OCR)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("OCR_ENGINE", " Remote ")
	t.Setenv("PORT", "8088")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Groq.APIKey != "gsk_test" {
		t.Errorf("expected API key from env, got %q", cfg.Groq.APIKey)
	}
	if cfg.Groq.Model != "llama-3.1-8b-instant" {
		t.Errorf("unexpected model %q", cfg.Groq.Model)
	}
	if cfg.OCR.Engine != "remote" {
		t.Errorf("unexpected engine %q", cfg.OCR.Engine)
	}
	if cfg.Port != 8088 {
		t.Errorf("expected port 8088, got %d", cfg.Port)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestTranslateTimeoutIsFixed(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSLATE_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Groq.Timeout != DefaultTranslateTimeout {
		t.Errorf("expected fixed %v timeout, got %v", DefaultTranslateTimeout, cfg.Groq.Timeout)
	}
}

func TestNormalizeEngine(t *testing.T) {
	for in, want := range map[string]string{
		"tesseract":       "tesseract",
		"Remote":          "remote",
		" GEMINI\n":       "gemini",
		"Tesseract-Fast ": "tesseract-fast",
		"":                "",
	} {
		if got := NormalizeEngine(in); got != want {
			t.Errorf("NormalizeEngine(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEngineIs(t *testing.T) {
	tests := []struct {
		engine string
		name   string
		want   bool
	}{
		{"remote", "remote", true},
		{"Remote", "remote", true},
		{" GEMINI ", "gemini", true},
		{"tesseract-fast", "tesseract", false},
		{"", "tesseract", false},
	}
	for _, tt := range tests {
		if got := (OCR{Engine: tt.engine}).EngineIs(tt.name); got != tt.want {
			t.Errorf("OCR{Engine: %q}.EngineIs(%q) = %v, want %v", tt.engine, tt.name, got, tt.want)
		}
	}
}
