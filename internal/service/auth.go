// Package service contains the business logic layer: registration, login,
// session management, and profile operations.
//
// Handlers stay HTTP-only, services enforce the rules, and the repository
// and store stay dumb. Services return apperror values; the handler layer
// translates those to status codes and the JSON envelope.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/userverse/userverse/internal/apperror"
	"github.com/userverse/userverse/internal/model"
	"github.com/userverse/userverse/internal/repository"
	"github.com/userverse/userverse/internal/store"
)

// SessionTTL is the fixed lifetime of a session: expiresAt = createdAt + 24h.
const SessionTTL = 24 * time.Hour

const (
	minUserNameLen = 3
	maxUserNameLen = 50
	minPasswordLen = 6
)

// AuthHooks are side-effect points around register and login. Like
// repository.Hooks they must not alter outcomes — the service ignores
// anything they might want to signal.
type AuthHooks interface {
	BeforeRegister(email string)
	AfterRegister(result *AuthResult)
	BeforeLogin(email string)
	AfterLogin(result *AuthResult)
}

// NopAuthHooks is the default AuthHooks implementation.
type NopAuthHooks struct{}

func (NopAuthHooks) BeforeRegister(string)     {}
func (NopAuthHooks) AfterRegister(*AuthResult) {}
func (NopAuthHooks) BeforeLogin(string)        {}
func (NopAuthHooks) AfterLogin(*AuthResult)    {}

// LogAuthHooks logs auth lifecycle events with slog.
type LogAuthHooks struct {
	Logger *slog.Logger
}

func (h LogAuthHooks) BeforeRegister(email string) {
	h.Logger.Debug("before register", slog.String("email", email))
}

func (h LogAuthHooks) AfterRegister(result *AuthResult) {
	h.Logger.Info("user registered",
		slog.String("userID", result.User.ID),
		slog.String("email", result.User.Email),
	)
}

func (h LogAuthHooks) BeforeLogin(email string) {
	h.Logger.Debug("before login", slog.String("email", email))
}

func (h LogAuthHooks) AfterLogin(result *AuthResult) {
	h.Logger.Info("user logged in", slog.String("userID", result.User.ID))
}

// RegisterInput is the request payload for registration.
type RegisterInput struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginInput is the request payload for login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by Register and Login: the compact user view plus
// the freshly issued session token and its expiry.
type AuthResult struct {
	User      model.AuthUser `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// AuthService issues, validates, and revokes bearer tokens, and owns the
// session store.
//
// SESSION MODEL:
// Every successful register or login creates a brand-new session. Prior
// sessions for the same user are left alone, so a user can hold any number
// of concurrent sessions. Expired sessions are removed lazily the next
// time ValidateToken sees them; nothing sweeps proactively unless the
// optional sweeper is started, so dead sessions otherwise sit in memory
// until looked up. Both are known limitations, kept deliberately.
type AuthService struct {
	users    *repository.UserRepository
	sessions *store.Store[*model.Session]
	hooks    AuthHooks
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService. Nil hooks selects NopAuthHooks.
func NewAuthService(users *repository.UserRepository, sessions *store.Store[*model.Session], hooks AuthHooks, logger *slog.Logger) *AuthService {
	if hooks == nil {
		hooks = NopAuthHooks{}
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		hooks:    hooks,
		logger:   logger,
		now:      time.Now,
	}
}

// generateToken returns 32 bytes from crypto/rand, hex-encoded (64 chars).
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("service/auth: generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// createSession issues a new session for the user.
func (s *AuthService) createSession(userID string) (*model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	session := &model.Session{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	return s.sessions.Insert(session), nil
}

// validateRegister checks the shape of a registration payload.
func validateRegister(in RegisterInput) error {
	if in.Email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperror.ValidationFailed("email", "email must be a valid address")
	}
	if len(in.UserName) < minUserNameLen || len(in.UserName) > maxUserNameLen {
		return apperror.ValidationFailed("userName",
			fmt.Sprintf("userName must be between %d and %d characters", minUserNameLen, maxUserNameLen))
	}
	if len(in.Password) < minPasswordLen {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	return nil
}

// Register creates a user and their first session.
//
// Email uniqueness is checked before username uniqueness, as two separate
// lookups. The check-then-create pair is not transactional — the store
// locks per operation only — so two simultaneous registrations for the
// same email could in principle both pass the check. Accepted: the
// conflict window is tiny and the system has no durable state to corrupt.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	s.hooks.BeforeRegister(in.Email)

	if _, exists := s.users.FindByEmail(in.Email); exists {
		return nil, apperror.Conflict("User with this email already exists")
	}
	if _, exists := s.users.FindByUsername(in.UserName); exists {
		return nil, apperror.Conflict("User with this username already exists")
	}

	user, err := s.users.Create(repository.CreateInput{
		Email:    in.Email,
		UserName: in.UserName,
		Password: in.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, err
	}

	result := &AuthResult{
		User:      user.Auth(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
	s.hooks.AfterRegister(result)
	return result, nil
}

// Login verifies credentials and issues a new session.
//
// Every login failure, a missing field included, produces the same
// Unauthorized error. The login surface never reports 400; anything short
// of valid credentials reads as invalid credentials, so this path cannot
// be used to enumerate registered emails either.
func (s *AuthService) Login(in LoginInput) (*AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	s.hooks.BeforeLogin(in.Email)

	user, ok := s.users.VerifyCredentials(in.Email, in.Password)
	if !ok {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, err
	}

	result := &AuthResult{
		User:      user.Auth(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
	s.hooks.AfterLogin(result)
	return result, nil
}

// ValidateToken resolves a bearer token to a user id.
//
// Sessions are matched by exact token with a linear scan. A session found
// expired is deleted on the spot and reported invalid — the lazy half of
// expiry. This resolves identity only; it grants no permissions.
func (s *AuthService) ValidateToken(token string) (string, bool) {
	session, ok := s.sessions.FindOne(func(sess *model.Session) bool {
		return sess.Token == token
	})
	if !ok {
		return "", false
	}
	if !s.now().Before(session.ExpiresAt) {
		s.sessions.Delete(session.ID)
		s.logger.Debug("expired session removed", slog.String("sessionID", session.ID))
		return "", false
	}
	return session.UserID, true
}

// Logout deletes the session holding the given token. Unknown tokens are a
// no-op: Logout returns false and no error, so it is idempotent.
func (s *AuthService) Logout(token string) bool {
	session, ok := s.sessions.FindOne(func(sess *model.Session) bool {
		return sess.Token == token
	})
	if !ok {
		return false
	}
	return s.sessions.Delete(session.ID)
}

// SweepExpired removes every expired session and returns how many it
// deleted. Lazy deletion during ValidateToken remains the primary cleanup
// path; this exists so long-running processes can bound the growth of dead
// sessions that are never looked up again.
func (s *AuthService) SweepExpired() int {
	now := s.now()
	expired := s.sessions.Find(func(sess *model.Session) bool {
		return !now.Before(sess.ExpiresAt)
	})
	for _, sess := range expired {
		s.sessions.Delete(sess.ID)
	}
	return len(expired)
}

// StartSweeper runs SweepExpired every interval until ctx is cancelled.
func (s *AuthService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.SweepExpired(); n > 0 {
					s.logger.Info("swept expired sessions", slog.Int("count", n))
				}
			}
		}
	}()
}

// SetClock overrides the time source. Test helper.
func (s *AuthService) SetClock(now func() time.Time) {
	s.now = now
}
