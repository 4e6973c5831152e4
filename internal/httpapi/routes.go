// Package httpapi serves the translation and OCR endpoints, both as the
// serverless translate function and as the local OCR server.
package httpapi

import (
	"net/http"

	"github.com/fpang/polylingo/internal/pipeline"
)

// Routes served by this package.
const (
	PathTranslate    = "/api/translate"
	PathOCRTranslate = "/api/ocr-translate"
	PathStatus       = "/api/status"
	PathHealth       = "/api/health"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "polylingo"

func handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httpError(w, r, http.StatusNotFound, "Not found")
}

// NewTranslateFunction returns the handler deployed as the serverless
// translate function.
func NewTranslateFunction(tr pipeline.Translator) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(PathTranslate, &TranslateHandler{Translator: tr})
	mux.HandleFunc("GET "+PathHealth, handleHealth)
	mux.HandleFunc("/", handleNotFound)
	return WithRequestID(WithMetrics(WithLogging(mux)))
}

// NewServer returns the local server handler: translation, OCR-translate,
// and status endpoints behind CORS, logging, and metrics.
func NewServer(tr pipeline.Translator, runner pipeline.Runner) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(PathTranslate, &TranslateHandler{Translator: tr})
	mux.Handle(PathOCRTranslate, &OCRTranslateHandler{Runner: runner})
	mux.HandleFunc("GET "+PathStatus, handleStatus)
	mux.HandleFunc("GET "+PathHealth, handleHealth)
	mux.HandleFunc("/", handleNotFound)
	return WithRequestID(WithMetrics(WithLogging(WithCORS(mux))))
}
