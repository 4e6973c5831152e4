package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// httpError sends {"error": clientMsg}. Optional internalDetails are logged
// server-side but never sent to the client.
func httpError(w http.ResponseWriter, r *http.Request, status int, clientMsg string, internalDetails ...string) {
	if len(internalDetails) > 0 {
		zerolog.Ctx(r.Context()).Error().
			Int("status", status).
			Str("clientMsg", clientMsg).
			Strs("internalDetails", internalDetails).
			Msg("HTTP error with internal details")
	}
	respondJSON(w, status, map[string]string{"error": clientMsg})
}
