package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator accepts exactly one token.
type fakeValidator struct {
	token  string
	userID string
}

func (f *fakeValidator) ValidateToken(token string) (string, bool) {
	if token == f.token {
		return f.userID, true
	}
	return "", false
}

func TestRequireAuth(t *testing.T) {
	validator := &fakeValidator{token: "good-token", userID: "7"}

	var gotUserID, gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(validator)(next)

	t.Run("valid token reaches the handler with identity attached", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "7", gotUserID)
		assert.Equal(t, "good-token", gotToken)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"success":false,"error":"Authentication required"}`, rr.Body.String())
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid or expired token"}`, rr.Body.String())
	})
}

func TestUnauthorizedEnvelopeEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	unauthorized(rr, `token "quoted" <here>`)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, `token "quoted" <here>`, body.Error)
}

func TestContextAccessorsOnBareContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
	_, ok = TokenFromContext(req.Context())
	assert.False(t, ok)
}
