// Package gemini recognizes text with a Gemini vision model. The image is
// sent inline and the model answers with a small JSON transcription.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/polylingo/internal/auth"
	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/jsonutil"
	"github.com/fpang/polylingo/internal/metrics"
	"github.com/fpang/polylingo/internal/ocr"
)

// ErrMissingAPIKey is returned when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// systemInstruction asks for a verbatim transcription, never a translation.
const systemInstruction = `You are an OCR engine. Transcribe every piece of text visible in the image exactly as written, preserving line breaks and the original language. Do not translate, summarize, or describe the image.
Respond with JSON only: {"text": "<transcription>", "confidence": <0-100 estimate of transcription accuracy>}.
If the image contains no text, respond with {"text": "", "confidence": 0}.`

// generator is the subset of *genai.Models the engine calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// transcription is the JSON shape the model is asked to produce.
type transcription struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Engine implements ocr.Extractor.
type Engine struct {
	models generator
	model  string
	maxDim int
}

// New creates a Gemini client. It fails closed without an API key.
func New(ctx context.Context, cfg config.Gemini) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return newEngine(client.Models, cfg.Model), nil
}

func newEngine(models generator, model string) *Engine {
	if model == "" {
		model = config.DefaultGeminiModel
	}
	return &Engine{models: models, model: model, maxDim: ocr.DefaultMaxDimension}
}

// Name implements ocr.Extractor.
func (e *Engine) Name() string { return "gemini" }

// Recognize implements ocr.Extractor. Gemini returns no word boxes.
func (e *Engine) Recognize(ctx context.Context, img ocr.Payload) ocr.Result {
	prep, err := ocr.Prepare(img, e.maxDim)
	if err != nil {
		return ocr.Failure(err)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: prep.MIMEType, Data: prep.Data}},
			{Text: "Transcribe the text in this image."},
		},
	}}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
	}

	log.Debug().
		Str("model", e.model).
		Int("image_bytes", len(prep.Data)).
		Str("mime", prep.MIMEType).
		Msg("Starting Gemini API call for OCR")

	start := time.Now()
	resp, err := e.models.GenerateContent(ctx, e.model, contents, cfg)
	elapsed := time.Since(start)

	m := metrics.New(metrics.Namespace).
		Dimension("Operation", "ocr").
		Dimension("Engine", e.Name()).
		Duration("OCRLatencyMs", elapsed).
		Metric("ImageBytes", float64(len(prep.Data)), metrics.UnitBytes).
		Property("model", e.model)

	if err != nil {
		m.Count("OCRErrors").Flush()
		perr := auth.Classify(err)
		log.Error().Err(err).Str("failure", perr.Type.String()).Dur("duration", elapsed).Msg("Gemini OCR call failed")
		return ocr.Failure(perr)
	}
	if resp == nil {
		m.Count("OCRErrors").Flush()
		return ocr.Failure(errors.New("received empty response from Gemini API"))
	}

	t, err := jsonutil.ParseJSON[transcription](resp.Text())
	if err != nil {
		m.Count("OCRErrors").Flush()
		log.Warn().Err(err).Msg("Gemini OCR response was not valid JSON")
		return ocr.Failure(fmt.Errorf("parse Gemini transcription: %w", err))
	}

	conf := clamp(t.Confidence)
	m.Metric("OCRConfidence", conf, metrics.UnitPercent).Flush()

	log.Info().
		Str("engine", e.Name()).
		Int("text_length", len(t.Text)).
		Float64("confidence", conf).
		Dur("elapsed", elapsed).
		Msg("OCR complete")

	return ocr.Result{Success: true, Text: strings.TrimSpace(t.Text), Confidence: conf}
}

func clamp(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}
