package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/repository"
)

// TokenHeader is the request header carrying the signed token. The frontend
// sends the raw token string here — no "Bearer " prefix.
const TokenHeader = "auth-token"

// contextKey is an unexported type for context keys in this package.
// A package-private key type means only this package can read or write the
// userID value — no other package can collide with or shadow it.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth gates a route on a valid token.
//
// Per-request state machine: Unauthenticated → (token present & valid) →
// Authenticated. Each failed transition is terminal:
//
//   - no auth-token header → 401, stop
//   - header present but verification fails → 400, stop
//   - valid → userID goes into the request context, chain continues
//
// Expired, forged, and malformed tokens are one undifferentiated 400 to the
// client; the real cause is logged at Warn so forgery attempts are still
// visible server-side without being distinguishable over the wire.
func RequireAuth(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				reject(w, http.StatusUnauthorized, "unauthenticated", "access denied, please log in")
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				logger.Warn("token rejected",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				reject(w, http.StatusBadRequest, "invalid_token", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin layers the role check on top of RequireAuth — mount it after,
// never alone. It resolves the authenticated user with a fresh store lookup
// so an admin flag flipped off takes effect on the very next request.
//
//   - user missing or is_admin false → 403
//   - store lookup fails → 500 ("authorization check failed" — a broken
//     store is never silently treated as authorized)
func RequireAdmin(users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				// Only reachable if RequireAdmin was mounted without
				// RequireAuth — treat as unauthenticated, not a panic.
				reject(w, http.StatusUnauthorized, "unauthenticated", "access denied, please log in")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					// Token is valid but the account is gone.
					reject(w, http.StatusForbidden, "forbidden", "admin access required")
					return
				}
				logger.Error("admin check failed",
					slog.String("userID", userID),
					slog.String("error", err.Error()),
				)
				reject(w, http.StatusInternalServerError, "internal_error", "authorization check failed")
				return
			}

			if !user.IsAdmin {
				reject(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request never passed RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the given userID. Test helper —
// production code only ever goes through RequireAuth.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// reject writes the standard error body and stops the chain. Same JSON shape
// as the handler layer's ErrorResponse so clients parse one format.
func reject(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errType,
		"message": message,
	})
}
