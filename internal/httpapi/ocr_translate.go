package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/ocr"
	"github.com/fpang/polylingo/internal/pipeline"
)

const (
	// maxImageBody caps an OCR request body; base64 inflates images by a third.
	maxImageBody = 20 << 20

	defaultTargetLanguage = "en"

	missingImageMessage = "Missing image data. Please provide image."
	invalidImageMessage = "Invalid image data. Please provide a base64-encoded image."
	ocrFailedMessage    = "OCR-translate failed. Please try again later."
)

type ocrTranslateRequest struct {
	Image          string `json:"image"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type ocrTranslateResponse struct {
	Success        bool       `json:"success"`
	ExtractedText  string     `json:"extractedText"`
	TranslatedText string     `json:"translatedText"`
	Confidence     float64    `json:"confidence"`
	SourceLanguage string     `json:"sourceLanguage"`
	TargetLanguage string     `json:"targetLanguage"`
	Words          []ocr.Word `json:"words"`
	Fallback       bool       `json:"fallback,omitempty"`
}

type ocrFailureResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Stage   string `json:"stage,omitempty"`
	Success bool   `json:"success"`
}

// OCRTranslateHandler reads text from an uploaded image and translates it.
type OCRTranslateHandler struct {
	Runner pipeline.Runner
}

func (h *OCRTranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req ocrTranslateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxImageBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, r, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		httpError(w, r, http.StatusBadRequest, missingImageMessage, err.Error())
		return
	}
	if req.Image == "" {
		httpError(w, r, http.StatusBadRequest, missingImageMessage)
		return
	}

	img, err := ocr.ParsePayload(req.Image)
	if err != nil {
		msg := invalidImageMessage
		if errors.Is(err, ocr.ErrEmptyPayload) {
			msg = missingImageMessage
		}
		httpError(w, r, http.StatusBadRequest, msg, err.Error())
		return
	}

	source := req.SourceLanguage
	if source == "" {
		source = language.Auto
	}
	target := req.TargetLanguage
	if target == "" {
		target = defaultTargetLanguage
	}

	zerolog.Ctx(r.Context()).Info().
		Int("image_bytes", img.Size()).
		Str("source", source).
		Str("target", target).
		Msg("Received OCR-translate request")

	s := h.Runner.Run(r.Context(), pipeline.Job{Image: img, SourceLanguage: source, TargetLanguage: target})
	if !s.Success {
		respondJSON(w, http.StatusInternalServerError, ocrFailureResponse{
			Error:   ocrFailedMessage,
			Details: s.Error,
			Stage:   string(s.Stage),
			Success: false,
		})
		return
	}

	words := s.Words
	if words == nil {
		words = []ocr.Word{}
	}
	respondJSON(w, http.StatusOK, ocrTranslateResponse{
		Success:        true,
		ExtractedText:  s.ExtractedText,
		TranslatedText: s.TranslatedText,
		Confidence:     s.Confidence,
		SourceLanguage: source,
		TargetLanguage: target,
		Words:          words,
		Fallback:       s.Fallback,
	})
}
