// Package httputil holds the shared JSON response and decoding helpers
// used by every HTTP handler.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"lexgate/pkg/faults"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError maps a fault to its HTTP status and error envelope. Internal
// faults omit the description so upstream details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := faults.CodeOf(err)
	status := faults.HTTPStatus(err)

	envelope := errorEnvelope{Error: string(code)}
	if code != faults.CodeInternal {
		envelope.Description = err.Error()
	}
	WriteJSON(w, status, envelope)
}

// Decode parses the request body into T. On failure it writes a
// bad_request envelope and reports ok=false; the handler just returns.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		logger.WarnContext(r.Context(), "request body rejected", "error", err)
		WriteError(w, faults.New(faults.CodeBadRequest, "malformed JSON body"))
		var zero T
		return zero, false
	}
	return v, true
}
