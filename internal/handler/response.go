package handler

// RESPONSE HELPERS:
// Every endpoint answers with the same JSON envelope:
//
//	success: {"success":true,"data":...}
//	failure: {"success":false,"error":"human-readable message"}
//
// The HTTP status code communicates the KIND of outcome; the envelope
// carries the payload or message. Centralising the encoding here keeps the
// handlers down to "call the service, hand the result to writeData or
// writeError".

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/userverse/userverse/internal/apperror"
)

// successEnvelope and failureEnvelope are the two wire shapes. They are
// separate types (rather than one struct with omitempty) so an empty data
// payload — e.g. a user list of length zero — still serializes as
// "data":[] instead of disappearing from the response.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON sends the given value with the status code. Headers must be
// set before the first body write — hence header, then WriteHeader, then
// Encode. The logger is the handler's own injected logger.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already gone; all we can do is log.
		logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeData sends a success envelope.
func writeData(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	writeJSON(w, logger, status, successEnvelope{Success: true, Data: data})
}

// writeFail sends a failure envelope with an explicit status. Used where a
// handler produces the message itself (e.g. body parse failures).
func writeFail(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, failureEnvelope{Success: false, Error: message})
}

// writeError maps a domain error to its HTTP status and sends the failure
// envelope.
//
// STATUS MAPPING:
// Validation, conflict, and upstream failures all map to 400 — a conflict
// here is a request problem ("that email is taken"), not a state the
// client can retry around, and an upstream failure aborts the request the
// client made. Unauthorized is 401, forbidden 403, not-found 404.
// Anything unrecognised falls through to 500 with the raw error message in
// the envelope, mirroring the original system's top-level fallback.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrConflict),
			errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		writeFail(w, logger, status, appErr.Message)
		return
	}

	logger.Error("unexpected error", slog.String("error", err.Error()))
	writeFail(w, logger, http.StatusInternalServerError, err.Error())
}
