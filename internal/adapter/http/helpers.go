package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Strob0t/BoardBridge/internal/domain/failure"
)

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request, bodyLimit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// callResponse is the apps-framework call-response envelope. Failed chains
// still answer 200; the envelope type carries the outcome.
type callResponse struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

func writeCallOK(w http.ResponseWriter, text string) {
	writeJSON(w, http.StatusOK, callResponse{Type: "ok", Text: text})
}

// writeCallError renders a chain failure. Localized failures carry their own
// user-facing message; anything else gets logged and answered generically.
func writeCallError(w http.ResponseWriter, err error) {
	if f, ok := failure.As(err); ok {
		writeJSON(w, http.StatusOK, callResponse{Type: "error", Text: f.Message})
		return
	}
	slog.Error("chain failed without localized failure", "error", err)
	writeJSON(w, http.StatusOK, callResponse{Type: "error", Text: "internal error"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
