package repository

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme abstracts how passwords are stored and compared.
//
// The historical behavior of this system is verbatim storage with exact
// byte comparison. That is preserved as PlainScheme (the default) so the
// observable behavior of login does not change. BcryptScheme is the
// hardened alternative, selectable via PASSWORD_SCHEME=bcrypt; switching
// schemes invalidates accounts created under the other one.
type PasswordScheme interface {
	// Store converts a plaintext password into its stored form.
	Store(plaintext string) (string, error)
	// Compare reports whether plaintext matches the stored form.
	Compare(stored, plaintext string) bool
}

// PlainScheme stores passwords verbatim and compares them byte-for-byte.
type PlainScheme struct{}

func (PlainScheme) Store(plaintext string) (string, error) {
	return plaintext, nil
}

func (PlainScheme) Compare(stored, plaintext string) bool {
	// Constant-time compare. The outcome is identical to ==, it just
	// doesn't let response timing reveal how many leading bytes matched.
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) == 1
}

// BcryptScheme stores passwords as bcrypt hashes.
//
// bcrypt generates a random salt per hash and embeds it in the output, so
// the stored string is self-contained. Cost 12 takes roughly 250ms on a
// modern server — negligible for a login, expensive for an attacker.
type BcryptScheme struct {
	Cost int
}

// NewBcryptScheme returns a BcryptScheme with the production cost.
func NewBcryptScheme() BcryptScheme {
	return BcryptScheme{Cost: 12}
}

func (b BcryptScheme) Store(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		// bcrypt silently truncates input beyond 72 bytes; reject instead.
		return "", fmt.Errorf("repository: password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.Cost)
	if err != nil {
		return "", fmt.Errorf("repository: hashing password: %w", err)
	}
	return string(hashed), nil
}

func (b BcryptScheme) Compare(stored, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
