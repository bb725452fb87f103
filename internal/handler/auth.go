package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/userverse/userverse/internal/auth"
	"github.com/userverse/userverse/internal/service"
)

// AuthHandler exposes registration, login, and logout.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

// HandleRegister creates a user and their first session.
//
// HTTP: POST /auth/register
// BODY: {"email":..., "userName":..., "password":...}
// 201 → {"user":{id,email,userName},"token":...,"expiresAt":...}
// 400 → malformed body, failed validation, or duplicate email/username
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeFail(w, h.logger, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.auth.Register(in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, h.logger, http.StatusCreated, result)
}

// HandleLogin verifies credentials and issues a fresh session.
//
// HTTP: POST /auth/login
// 200 → same shape as register
// 401 → invalid credentials (identical for unknown email and wrong password)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeFail(w, h.logger, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.auth.Login(in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, h.logger, http.StatusOK, result)
}

// HandleLogout revokes the session that authenticated this request.
//
// HTTP: POST /auth/logout (behind RequireAuth)
// 200 → {"message":"Logged out successfully"} — also for a session that
// vanished between validation and revocation; logout is idempotent.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.TokenFromContext(r.Context())
	if !ok {
		// Only reachable if the route is miswired without RequireAuth.
		writeFail(w, h.logger, http.StatusUnauthorized, "Authentication required")
		return
	}

	h.auth.Logout(token)
	writeData(w, h.logger, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
