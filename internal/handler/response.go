package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// errorBody is the standard error shape returned by every endpoint:
// {"error":"<machine-readable code>","message":"<human-readable text>"}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
// Headers must be set before the first body write; once Encode runs, the
// status line is on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError maps a domain error to its HTTP status and standard body.
// The service layer never sees status codes; this is the single place where
// the error taxonomy meets HTTP.
func writeError(w http.ResponseWriter, err error) {
	type mapping struct {
		sentinel error
		status   int
		code     string
	}
	for _, m := range []mapping{
		{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrUpstream, http.StatusBadGateway, "upstream_error"},
	} {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, errorBody{Error: m.code, Message: sentinelMessage(err, m.sentinel)})
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "internal_error",
		Message: "internal server error",
	})
}

// badRequest rejects a request before it reaches the service layer
// (e.g. malformed JSON or a non-numeric path id).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: message})
}

// sentinelMessage extracts the human-readable part of a wrapped sentinel
// error, dropping the "service.TripService.Update:" style layer prefixes.
// e.g. "service.TripService.Update: validation error: title must not be blank"
// → "title must not be blank".
func sentinelMessage(err error, sentinel error) string {
	msg, tag := err.Error(), sentinel.Error()

	i := strings.Index(msg, tag)
	if i < 0 {
		return tag
	}
	if rest, ok := strings.CutPrefix(msg[i:], tag+": "); ok && rest != "" {
		return rest
	}
	return tag
}
