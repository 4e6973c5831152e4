package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fpang/polylingo/internal/pipeline"
	"github.com/fpang/polylingo/internal/translate"
)

// maxTranslateBody caps a translation request body.
const maxTranslateBody = 1 << 20

// TranslateHandler is the translate function. It sets its own CORS headers
// so it behaves the same behind API Gateway and on the local server.
type TranslateHandler struct {
	Translator pipeline.Translator
}

func (h *TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		respondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var raw rawTranslateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTranslateBody)).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		// An unreadable body carries no usable parameters.
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Translate request body not decodable")
		raw = rawTranslateRequest{}
	}
	req := raw.request()

	out := h.Translator.Translate(r.Context(), req)
	if out.Kind == translate.OutcomeInvalid {
		httpError(w, r, http.StatusBadRequest, translate.MissingParametersMessage)
		return
	}
	if out.Kind == translate.OutcomeFallback {
		zerolog.Ctx(r.Context()).Warn().Err(out.Cause).Msg("Serving fallback translation")
	}
	respondJSON(w, http.StatusOK, out.Result)
}

// rawTranslateRequest defers field decoding so one mistyped field does not
// discard the others.
type rawTranslateRequest struct {
	Text           json.RawMessage `json:"text"`
	SourceLanguage json.RawMessage `json:"sourceLanguage"`
	TargetLanguage json.RawMessage `json:"targetLanguage"`
}

func (r rawTranslateRequest) request() translate.Request {
	return translate.Request{
		Text:           stringField(r.Text),
		SourceLanguage: stringField(r.SourceLanguage),
		TargetLanguage: stringField(r.TargetLanguage),
	}
}

// stringField decodes a JSON string. Any other JSON type counts as absent.
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
