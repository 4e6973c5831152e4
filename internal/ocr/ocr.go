// Package ocr defines the text-extraction contract shared by every OCR
// backend, plus the image payload handling they have in common.
//
// Backends live in subpackages (tesseract, remote, gemini) and are selected
// through the backend package. They all take only plain data: an EngineConfig
// value and the image bytes. No callbacks, loggers, or function-valued options
// ever cross into an engine.
package ocr

import (
	"context"
	"strings"
)

// DefaultLanguage is the single trained-data model used for recognition.
const DefaultLanguage = "eng"

// EngineConfig is the fixed, minimal configuration handed to a recognition
// engine. It must stay plain data.
type EngineConfig struct {
	Language string
}

// DefaultEngineConfig returns the configuration every local backend uses
// unless told otherwise.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Language: DefaultLanguage}
}

// Box is a word bounding box in pixel coordinates, origin top-left.
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Word is a single recognized token.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       Box     `json:"bbox"`
}

// Result is the outcome of one recognition. Confidence is on a 0–100 scale.
// Words is optional and omitted by fast backends. TranslatedText is only set
// by backends that translate server-side. Error is set iff Success is false.
type Result struct {
	Success        bool    `json:"success"`
	Text           string  `json:"text,omitempty"`
	Confidence     float64 `json:"confidence"`
	Words          []Word  `json:"words,omitempty"`
	TranslatedText string  `json:"translatedText,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Extractor turns an image into text. Recognize never panics and never
// returns an error value; failures come back as Result{Success: false}.
type Extractor interface {
	Name() string
	Recognize(ctx context.Context, img Payload) Result
}

// Failure converts err into a failed Result with a non-empty message.
func Failure(err error) Result {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = "Unknown OCR error"
	}
	return Result{Success: false, Error: msg}
}

// MeanConfidence averages word confidences; zero words yields zero.
func MeanConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
