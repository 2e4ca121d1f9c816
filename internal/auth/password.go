// Package auth — password hashing.
//
// WHY BCRYPT?
// bcrypt is deliberately slow, which is the point: brute-forcing a leaked
// digest is expensive. It also generates a fresh random salt per call and
// embeds it in the output, so two hashes of the same password differ and no
// separate salt column is needed. Never compare digests by equality — only
// through Verify, which decodes the embedded salt.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly ~250ms on a
// modern server — negligible for a login, brutal for an attacker.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be lowered in tests —
// cost 4 makes test suites fast without changing the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (low)
// cost. Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is self-contained ($2a$12$<salt><hash>) and is stored directly
// as the user's password digest.
//
// Returns an error if the plaintext exceeds 72 bytes — bcrypt silently
// truncates beyond that, so we reject explicitly instead.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt digest.
//
// Returns (false, nil) for a plain mismatch — a wrong password is a normal
// outcome, not an error. A non-nil error means the digest itself is
// malformed (data corruption); callers treat that as an authentication
// failure too, but it gets logged rather than swallowed.
//
// bcrypt.CompareHashAndPassword compares in constant time, so response
// timing doesn't leak how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return true, nil
}
