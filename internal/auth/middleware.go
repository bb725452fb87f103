// Package auth provides the bearer-token middleware and the request
// context carrying the authenticated identity.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// TokenValidator resolves a bearer token to a user id.
// Implemented by service.AuthService.
type TokenValidator interface {
	ValidateToken(token string) (userID string, ok bool)
}

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow
// the identity values we store on the request context.
type contextKey int

const (
	userIDKey contextKey = iota
	tokenKey
)

// RequireAuth enforces authentication on protected routes.
//
// It expects "Authorization: Bearer <token>", validates the token against
// the session store, and puts both the resolved user id and the raw token
// on the request context. A missing header or an invalid/expired token
// stops the chain with a 401 envelope.
//
// The raw token is kept on the context so the logout handler can revoke
// the exact session that authenticated the request without re-parsing the
// header.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Authentication required")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			userID, ok := validator.ValidateToken(token)
			if !ok {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user's id.
// Returns ("", false) on an unauthenticated request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromContext returns the bearer token that authenticated the request.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// unauthorized writes a 401 in the standard response envelope. Kept inline
// (rather than importing the handler package) so auth stays a leaf package.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: message})
}
