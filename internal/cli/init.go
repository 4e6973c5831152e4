// Package cli holds the setup and output helpers shared by the polylingo
// command-line tools.
package cli

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/auth"
	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/ocr"
	"github.com/fpang/polylingo/internal/ocr/backend"
	"github.com/fpang/polylingo/internal/pipeline"
	"github.com/fpang/polylingo/internal/translate"
)

// LoadConfig reads the environment configuration or exits.
func LoadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	return cfg
}

// ResolveGroqKey fills cfg.Groq.APIKey from the environment or the GPG
// credentials file. It exits when no key is available.
func ResolveGroqKey(cfg *config.Config) {
	key, err := auth.GetAPIKey(auth.Groq)
	if err != nil {
		HandleKeyError(err)
	}
	cfg.Groq.APIKey = key
}

// ResolveGeminiKey fills cfg.Gemini.APIKey when the gemini engine is
// selected. Other engines need no Gemini key.
func ResolveGeminiKey(cfg *config.Config) {
	if !cfg.OCR.EngineIs(backend.Gemini) {
		return
	}
	key, err := auth.GetAPIKey(auth.Gemini)
	if err != nil {
		HandleKeyError(err)
	}
	cfg.Gemini.APIKey = key
}

// InitTranslator resolves the Groq key and builds a translator, or exits.
func InitTranslator(cfg *config.Config) *translate.Translator {
	ResolveGroqKey(cfg)
	tr, err := translate.New(cfg.Groq)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create translator")
	}
	return tr
}

// InitExtractor resolves any key the engine needs and builds it, or exits.
func InitExtractor(ctx context.Context, cfg *config.Config) ocr.Extractor {
	cfg.OCR.Engine = config.NormalizeEngine(cfg.OCR.Engine)
	ResolveGeminiKey(cfg)
	ex, err := backend.New(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Str("engine", cfg.OCR.Engine).Msg("Failed to create OCR engine")
	}
	log.Debug().Str("engine", ex.Name()).Msg("OCR engine ready")
	return ex
}

// InitRunner builds the pipeline for cfg. The remote engine does both steps
// on the server and ignores tr; pass nil to have a translator created only
// when one is needed.
func InitRunner(ctx context.Context, cfg *config.Config, tr pipeline.Translator) pipeline.Runner {
	ex := InitExtractor(ctx, cfg)
	if d, ok := ex.(pipeline.Delegate); ok && cfg.OCR.EngineIs(backend.Remote) {
		return &pipeline.OneStep{Client: d}
	}
	if tr == nil {
		tr = InitTranslator(cfg)
	}
	return &pipeline.TwoStep{Extractor: ex, Translator: tr}
}

// HandleKeyError exits with a message pointing at the missing credential.
func HandleKeyError(err error) {
	if errors.Is(err, auth.ErrNoKey) {
		log.Fatal().Err(err).Msg("No API key configured")
	}
	log.Fatal().Err(err).Msg("Failed to read API key")
}
