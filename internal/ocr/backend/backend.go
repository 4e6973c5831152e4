// Package backend picks an OCR extractor by name.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/ocr"
	"github.com/fpang/polylingo/internal/ocr/gemini"
	"github.com/fpang/polylingo/internal/ocr/remote"
	"github.com/fpang/polylingo/internal/ocr/tesseract"
)

// Engine names accepted by New.
const (
	Tesseract     = "tesseract"
	TesseractFast = "tesseract-fast"
	Gemini        = "gemini"
	Remote        = "remote"
)

// ErrUnknownEngine is returned for an engine name New does not recognize.
var ErrUnknownEngine = errors.New("unknown OCR engine")

// Names lists the accepted engine names, default first.
func Names() []string {
	return []string{Tesseract, TesseractFast, Gemini, Remote}
}

// New builds the extractor named by cfg.OCR.Engine.
func New(ctx context.Context, cfg config.Config) (ocr.Extractor, error) {
	engineCfg := ocr.EngineConfig{Language: cfg.OCR.Language}

	switch config.NormalizeEngine(cfg.OCR.Engine) {
	case Tesseract, "":
		return tesseract.New(engineCfg, tesseract.ModeDetailed), nil
	case TesseractFast:
		return tesseract.New(engineCfg, tesseract.ModeFast), nil
	case Gemini:
		e, err := gemini.New(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return e, nil
	case Remote:
		return remote.NewClient(cfg.OCR.RemoteURL), nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownEngine, cfg.OCR.Engine, strings.Join(Names(), ", "))
	}
}
