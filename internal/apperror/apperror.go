// Package apperror defines the application's error kinds.
//
// Services wrap these into their returns with fmt.Errorf("...: %w", ...);
// the HTTP layer maps each kind to a status code with errors.Is. No raw
// internal error ever crosses the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors — one per error kind the HTTP boundary distinguishes.
var (
	ErrNotFound = errors.New("not found")

	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("validation error")

	// ErrConflict is a store uniqueness violation (duplicate username/email,
	// duplicate player id). Reported distinctly from other storage errors.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated means the request carried no token at all.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials is the single, deliberately undifferentiated
	// login failure. Unknown email and wrong password both produce it, with
	// the same message, so responses can't be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden means the caller is authenticated but lacks the role.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstream is a third-party service failure (coach API, image host).
	ErrUpstream = errors.New("upstream error")
)

// AppError pairs a sentinel with a user-facing message. The sentinel drives
// the status code, the message is what the client sees.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // human-readable, safe to return to the client
	Field   string // optional: the request field at fault
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// InvalidCredentials always carries the same message regardless of whether
// the email was unknown or the password was wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Upstream wraps a third-party failure. The raw cause stays in the chain for
// logging; only message reaches the client. cause may be nil (e.g. a missing
// API key — there is no upstream call to blame yet).
func Upstream(message string, cause error) *AppError {
	err := ErrUpstream
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrUpstream, cause)
	}
	return &AppError{
		Err:     err,
		Message: message,
	}
}
