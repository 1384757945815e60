// Package auth isolates credential checking behind a small interface so the
// stored password format can change without touching login handling.
package auth

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier reports whether a presented password matches a stored
// one. Implementations must treat an empty presented password as a mismatch.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}

// PlainVerifier compares passwords byte for byte, case sensitive.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored, presented string) bool {
	return presented != "" && stored == presented
}

// BcryptVerifier treats the stored value as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, presented string) bool {
	if presented == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// HashPassword produces a bcrypt hash suitable for BcryptVerifier at the
// default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
