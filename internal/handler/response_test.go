package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userverse/userverse/internal/apperror"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperror.ValidationFailed("email", "bad email"), http.StatusBadRequest},
		{"conflict", apperror.Conflict("User with this email already exists"), http.StatusBadRequest},
		{"upstream", apperror.Upstream("GitHub API returned status 500"), http.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("You can only access your own profile"), http.StatusForbidden},
		{"not found", apperror.NotFound("User", "7"), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, logger, tt.err)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

// Unexpected errors are reported through the logger the caller hands in,
// the same injected logger every handler carries.
func TestWriteErrorLogsUnexpectedErrorsToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rr := httptest.NewRecorder()
	writeError(rr, logger, errors.New("disk on fire"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "unexpected error")
	assert.Contains(t, buf.String(), "disk on fire")
}
