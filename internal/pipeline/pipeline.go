// Package pipeline chains OCR and translation for a single image.
//
// Runs are strictly sequential: recognize, then translate the recognized
// text. There are no retries and no state shared between runs.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/metrics"
	"github.com/fpang/polylingo/internal/ocr"
	"github.com/fpang/polylingo/internal/ocr/remote"
	"github.com/fpang/polylingo/internal/translate"
)

// ErrNoText is reported when recognition succeeds but finds nothing.
var ErrNoText = errors.New("no text detected in image")

// Stage names the step a run stopped at.
type Stage string

const (
	StageOCR       Stage = "ocr"
	StageTranslate Stage = "translate"
	StageDone      Stage = "done"
)

// Job is one image to read and translate.
type Job struct {
	Image          ocr.Payload
	SourceLanguage string
	TargetLanguage string
}

// Summary is the outcome of a run. Error is set iff Success is false, and
// Stage says where the run stopped.
type Summary struct {
	Success        bool       `json:"success"`
	Stage          Stage      `json:"stage"`
	ExtractedText  string     `json:"extractedText"`
	TranslatedText string     `json:"translatedText"`
	Confidence     float64    `json:"confidence"`
	Words          []ocr.Word `json:"words,omitempty"`
	Fallback       bool       `json:"fallback,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// Runner executes a Job.
type Runner interface {
	Run(ctx context.Context, job Job) Summary
}

// Translator is satisfied by *translate.Translator.
type Translator interface {
	Translate(ctx context.Context, req translate.Request) translate.Outcome
}

// Delegate performs recognition and translation in one remote call.
// *remote.Client satisfies it.
type Delegate interface {
	RecognizeAndTranslate(ctx context.Context, img ocr.Payload, source, target string) remote.Reply
}

// TwoStep runs a local extractor, then the translator.
type TwoStep struct {
	Extractor  ocr.Extractor
	Translator Translator
}

// Run implements Runner. The translator is only called when recognition
// succeeded with non-blank text.
func (p *TwoStep) Run(ctx context.Context, job Job) Summary {
	start := time.Now()
	md := ocr.Inspect(job.Image)
	log.Debug().
		Str("engine", p.Extractor.Name()).
		Int("image_bytes", job.Image.Size()).
		Bool("has_exif", md.HasEXIF).
		Str("target", job.TargetLanguage).
		Msg("Pipeline started")

	res := p.Extractor.Recognize(ctx, job.Image)
	if !res.Success {
		return finish(p.Extractor.Name(), start, Summary{Stage: StageOCR, Error: res.Error})
	}
	if strings.TrimSpace(res.Text) == "" {
		return finish(p.Extractor.Name(), start, Summary{
			Stage:      StageOCR,
			Confidence: res.Confidence,
			Error:      ErrNoText.Error(),
		})
	}

	out := p.Translator.Translate(ctx, translate.Request{
		Text:           res.Text,
		SourceLanguage: job.SourceLanguage,
		TargetLanguage: job.TargetLanguage,
	})
	if out.Kind == translate.OutcomeInvalid {
		return finish(p.Extractor.Name(), start, Summary{
			Stage:         StageTranslate,
			ExtractedText: res.Text,
			Confidence:    res.Confidence,
			Words:         res.Words,
			Error:         translate.MissingParametersMessage,
		})
	}

	return finish(p.Extractor.Name(), start, Summary{
		Success:        true,
		Stage:          StageDone,
		ExtractedText:  res.Text,
		TranslatedText: out.Result.Translation,
		Confidence:     res.Confidence,
		Words:          res.Words,
		Fallback:       out.Result.Fallback,
	})
}

// OneStep hands the whole job to a server.
type OneStep struct {
	Client Delegate
}

// Run implements Runner. Any remote failure is reported at the OCR stage,
// since the server did not get past recognition from the caller's view.
func (p *OneStep) Run(ctx context.Context, job Job) Summary {
	start := time.Now()
	source := job.SourceLanguage
	if source == "" {
		source = language.Auto
	}

	reply := p.Client.RecognizeAndTranslate(ctx, job.Image, source, job.TargetLanguage)
	r := reply.Result
	if !r.Success {
		return finish("remote", start, Summary{Stage: StageOCR, Error: r.Error})
	}
	return finish("remote", start, Summary{
		Success:        true,
		Stage:          StageDone,
		ExtractedText:  r.Text,
		TranslatedText: r.TranslatedText,
		Confidence:     r.Confidence,
		Words:          r.Words,
		Fallback:       reply.Fallback,
	})
}

func finish(engine string, start time.Time, s Summary) Summary {
	elapsed := time.Since(start)

	m := metrics.New(metrics.Namespace).
		Dimension("Operation", "pipeline").
		Dimension("Stage", string(s.Stage)).
		Property("engine", engine).
		Duration("PipelineLatencyMs", elapsed).
		Count("PipelineRuns")
	if !s.Success {
		m.Count("PipelineFailures")
	}
	if s.Fallback {
		m.Count("Fallbacks")
	}
	m.Flush()

	if s.Success {
		log.Info().
			Str("engine", engine).
			Int("extracted_length", len(s.ExtractedText)).
			Float64("confidence", s.Confidence).
			Bool("fallback", s.Fallback).
			Dur("elapsed", elapsed).
			Msg("Pipeline complete")
	} else {
		log.Warn().
			Str("engine", engine).
			Str("stage", string(s.Stage)).
			Str("error", s.Error).
			Dur("elapsed", elapsed).
			Msg("Pipeline stopped")
	}
	return s
}
