// Package auth wraps the credential primitives: password hashing and signed
// token issuance/verification. It is stateless; the signing secret is injected
// by callers rather than read from ambient globals.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPassword returns a self-salted, irreversible hash of password.
// It fails only on catastrophic conditions (entropy exhaustion, absurd cost).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. A malformed hash
// yields false, never an error; callers treat any mismatch identically.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
