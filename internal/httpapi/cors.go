package httpapi

import "net/http"

// corsHeaders are sent on every response, errors included. Browsers call the
// API straight from the client app on any origin.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Methods":     "GET,OPTIONS,PATCH,DELETE,POST,PUT",
	"Access-Control-Allow-Headers":     "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization",
}

func setCORS(h http.Header) {
	for k, v := range corsHeaders {
		h.Set(k, v)
	}
}

// WithCORS adds the CORS headers to every response and answers preflight
// requests with 200 and an empty body.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORS(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
