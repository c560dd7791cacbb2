package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// Envelope is the unified response shape: {success, message, data}.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error and its detail is
// logged rather than echoed to the client.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		respond(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrAuth):
		respond(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		respond(w, http.StatusNotFound, err.Error(), nil)
	default:
		if log != nil {
			log.Error("request failed", slog.String("error", err.Error()))
		}
		respond(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// writeJSON encodes a non-envelope response body; the caller sets the
// status and content type first.
func writeJSON(w http.ResponseWriter, v interface{}) {
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
