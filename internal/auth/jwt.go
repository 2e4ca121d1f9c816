// Package auth provides JWT token issuance/verification, password hashing,
// and the request guards for protected routes.
//
// AUTHENTICATION FLOW:
//  1. POST /api/auth/register → bcrypt-hash the password, create the user
//  2. POST /api/auth/login → verify the password, issue a 7-day JWT
//  3. The client sends the JWT back in the `auth-token` request header
//  4. RequireAuth validates it and puts the userID in the request context
//  5. RequireAdmin additionally checks the is_admin flag with a fresh lookup
//
// The token is stateless: the only claim is the user ID ("sub"), signed with
// a process-wide HMAC secret. There is no server-side revocation — expiry is
// the only termination mechanism.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of an issued token. Seven days, measured
// from issuance.
const TokenTTL = 7 * 24 * time.Hour

const issuer = "v-specs"

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret used to sign and verify tokens. The secret is
// process configuration, loaded once at startup — there is deliberately no
// fallback default: a missing secret fails startup (see config.Load).
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The token carries exactly one identity claim:
// the user ID in "sub" (Subject), plus the standard issued-at/expiry fields.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a JWT for the given userID, valid for TokenTTL.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, TokenTTL)
}

// IssueWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired tokens.
func (s *TokenService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a JWT string and returns the userID it encodes.
//
// Checks performed (by the jwt library):
//   - signature is valid for the current secret
//   - token is not expired (expiry claim is required)
//   - issuer matches (rejects tokens minted by other apps)
//   - algorithm is HS256 (jwt.WithValidMethods closes the algorithm
//     confusion hole where a token claiming alg "none" slips through)
//
// Malformed, forged, and expired tokens are all the same failure to the
// caller. The returned error keeps the underlying cause so the guard can log
// the distinction internally, but nothing client-facing differentiates them.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
