package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/userverse/userverse/internal/apperror"
	"github.com/userverse/userverse/internal/auth"
	"github.com/userverse/userverse/internal/service"
)

// UserHandler exposes the profile routes. All of them sit behind
// RequireAuth; get and patch additionally enforce self-only access.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleList returns every user's public view.
//
// HTTP: GET /users → 200 [publicUser...]
// Requires a valid session but no further authorization — any
// authenticated user may list.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.logger, http.StatusOK, h.users.List())
}

// requireSelf enforces the self-only rule: the path id must equal the
// authenticated identity. Returns the id, or false after writing the
// error response.
//
// FORBIDDEN BEFORE ANYTHING ELSE:
// The ownership check runs before the body is read or the target user is
// looked up — a mismatched id is always 403, never 400 or 404, so the
// response doesn't reveal anything about the target.
func (h *UserHandler) requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	authedID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeFail(w, h.logger, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	if id != authedID {
		writeError(w, h.logger, apperror.Forbidden("You can only access your own profile"))
		return "", false
	}
	return id, true
}

// HandleGet returns one user's public view.
//
// HTTP: GET /users/{id} → 200 publicUser | 401 | 403 (not self) | 404
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, user)
}

// HandlePatch updates userName and/or gitUserName.
//
// HTTP: PATCH /users/{id}
// BODY: {"userName"?: ..., "gitUserName"?: ...}
// 200 → updated publicUser
// 400 → malformed body, duplicate username, or upstream fetch failure
//
// Supplying gitUserName triggers a synchronous refresh of repoInsights; a
// fetch failure aborts the whole patch with nothing persisted.
func (h *UserHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	var in service.PatchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid patch JSON", slog.String("error", err.Error()))
		writeFail(w, h.logger, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.users.Patch(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, user)
}
