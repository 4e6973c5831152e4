// Package tesseract is the local OCR backend, driving libtesseract through
// gosseract. Building it requires cgo and the tesseract/leptonica headers.
package tesseract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/metrics"
	"github.com/fpang/polylingo/internal/ocr"
)

// Mode selects how much detail the engine reports.
type Mode int

const (
	// ModeDetailed reports per-word boxes and confidences.
	ModeDetailed Mode = iota
	// ModeFast reports text and an overall confidence only.
	ModeFast
)

// Engine implements ocr.Extractor.
type Engine struct {
	cfg    ocr.EngineConfig
	mode   Mode
	maxDim int
}

// New creates an engine. The configuration is copied; nothing else is
// handed to the recognizer.
func New(cfg ocr.EngineConfig, mode Mode) *Engine {
	if cfg.Language == "" {
		cfg.Language = ocr.DefaultLanguage
	}
	return &Engine{cfg: cfg, mode: mode, maxDim: ocr.DefaultMaxDimension}
}

// Name implements ocr.Extractor.
func (e *Engine) Name() string {
	if e.mode == ModeFast {
		return "tesseract-fast"
	}
	return "tesseract"
}

type recognition struct {
	res ocr.Result
	err error
}

// Recognize implements ocr.Extractor. libtesseract calls cannot be
// interrupted, so a cancelled context abandons the in-flight call and lets
// it finish in the background.
func (e *Engine) Recognize(ctx context.Context, img ocr.Payload) ocr.Result {
	prep, err := ocr.Prepare(img, e.maxDim)
	if err != nil {
		return ocr.Failure(err)
	}

	start := time.Now()
	done := make(chan recognition, 1)
	go func() {
		res, err := e.run(prep.Data)
		done <- recognition{res: res, err: err}
	}()

	var out recognition
	select {
	case <-ctx.Done():
		return ocr.Failure(fmt.Errorf("recognition cancelled: %w", ctx.Err()))
	case out = <-done:
	}
	elapsed := time.Since(start)

	m := metrics.New(metrics.Namespace).
		Dimension("Operation", "ocr").
		Dimension("Engine", e.Name()).
		Duration("OCRLatencyMs", elapsed).
		Metric("ImageBytes", float64(len(prep.Data)), metrics.UnitBytes)
	if out.err != nil {
		m.Count("OCRErrors").Flush()
		log.Warn().Err(out.err).Str("engine", e.Name()).Msg("Tesseract recognition failed")
		return ocr.Failure(out.err)
	}
	m.Metric("OCRConfidence", out.res.Confidence, metrics.UnitPercent).Flush()

	log.Info().
		Str("engine", e.Name()).
		Int("width", prep.Width).
		Int("height", prep.Height).
		Int("text_length", len(out.res.Text)).
		Int("words", len(out.res.Words)).
		Float64("confidence", out.res.Confidence).
		Dur("elapsed", elapsed).
		Msg("OCR complete")
	return out.res
}

func (e *Engine) run(data []byte) (ocr.Result, error) {
	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetLanguage(e.cfg.Language); err != nil {
		return ocr.Result{}, fmt.Errorf("set language: %w", err)
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	res := ocr.Result{Success: true, Text: strings.TrimSpace(text)}
	if e.mode == ModeFast {
		lines, err := boxes(c, gosseract.RIL_TEXTLINE)
		if err == nil {
			res.Confidence = ocr.MeanConfidence(lines)
		}
		return res, nil
	}

	words, err := boxes(c, gosseract.RIL_WORD)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("read word boxes: %w", err)
	}
	res.Words = words
	res.Confidence = ocr.MeanConfidence(words)
	return res, nil
}

// boxes reads recognized units at the given level. gosseract reports
// confidence on the same 0-100 scale as ocr.Result.
func boxes(c *gosseract.Client, level gosseract.PageIteratorLevel) ([]ocr.Word, error) {
	bbs, err := c.GetBoundingBoxes(level)
	if err != nil {
		return nil, err
	}
	words := make([]ocr.Word, 0, len(bbs))
	for _, b := range bbs {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, ocr.Word{
			Text:       text,
			Confidence: b.Confidence,
			BBox: ocr.Box{
				X0: b.Box.Min.X,
				Y0: b.Box.Min.Y,
				X1: b.Box.Max.X,
				Y1: b.Box.Max.Y,
			},
		})
	}
	return words, nil
}
