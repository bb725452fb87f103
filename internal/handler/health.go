package handler

import (
	"log/slog"
	"net/http"
	"time"
)

// HandleHealth returns the liveness handler.
//
// HTTP: GET /health → 200 {"success":true,"data":{"status":"ok","timestamp":...}}
func HandleHealth(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, logger, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
