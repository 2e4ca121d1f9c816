// Package service — business logic, between the HTTP handlers and the
// repositories.
//
// AuthService is the account directory:
//
//	handlers (HTTP) → AuthService (rules) → UserRepository (store)
//	                ↘ PasswordService (bcrypt) ↘ TokenService (JWT)
//
// It owns the register/login/profile/favorites rules and knows nothing about
// HTTP — no status codes, no headers, no JSON.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/auth"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/repository"
)

// AuthService handles accounts: registration, login, the owner's profile and
// favorites.
type AuthService struct {
	users     repository.UserRepository
	players   repository.PlayerRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	players repository.PlayerRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		players:   players,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult is what a successful login hands back to the handler: the
// minted token plus the bits the frontend shows immediately.
type LoginResult struct {
	Token    string
	Username string
	MySetup  model.Setup
}

// Register creates a new account.
//
// All three fields are required. The password is hashed before anything
// touches the store; the store's UNIQUE constraints decide duplicates — a
// race between two registrations with the same email needs no locking here,
// exactly one wins and the other surfaces as a conflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	switch {
	case username == "":
		return nil, fmt.Errorf("service/auth: %w", apperror.ValidationFailed("username", "please fill in all fields"))
	case email == "":
		return nil, fmt.Errorf("service/auth: %w", apperror.ValidationFailed("email", "please fill in all fields"))
	case password == "":
		return nil, fmt.Errorf("service/auth: %w", apperror.ValidationFailed("password", "please fill in all fields"))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		MySetup:      model.DefaultSetup(),
		Favorites:    []int64{},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates by email + password and mints a token bound to the
// user's ID.
//
// "No such email" and "wrong password" collapse into one undifferentiated
// invalid-credentials outcome — same kind, same message — so login responses
// can't be used to probe which emails have accounts. A corrupt stored digest
// is logged as an error but still comes back as invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("service/auth: %w", apperror.InvalidCredentials())
		}
		return nil, fmt.Errorf("service/auth: looking up user by email: %w", err)
	}

	ok, err := s.passwords.Verify(user.PasswordHash, password)
	if err != nil {
		s.logger.Error("stored password digest is unreadable",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: %w", apperror.InvalidCredentials())
	}
	if !ok {
		return nil, fmt.Errorf("service/auth: %w", apperror.InvalidCredentials())
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		MySetup:  user.MySetup,
	}, nil
}

// GetProfile returns the caller's own record. The password digest never
// appears in any outward representation (json:"-" on the model).
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	return user, nil
}

// UpdateProfile merges the patch into the caller's setup and optionally
// replaces the avatar, then returns the updated record.
//
// Identity comes only from the verified token — there is no way to address
// another user's record through this operation, whatever the request body
// claims. Merge semantics: keys absent from the patch keep their stored
// values; a nil avatar leaves the stored avatar alone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch model.SetupPatch, avatar *string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	setup := user.MySetup
	patch.Apply(&setup)

	newAvatar := user.Avatar
	if avatar != nil {
		newAvatar = *avatar
	}

	if err := s.users.UpdateProfile(ctx, userID, setup, newAvatar); err != nil {
		return nil, fmt.Errorf("service/auth: updating profile for user %s: %w", userID, err)
	}

	user.MySetup = setup
	user.Avatar = newAvatar

	s.logger.Info("profile updated", slog.String("userID", userID))

	return user, nil
}

// AddFavorite puts playerID into the caller's favorites set. Adding an
// already-favorited player is a no-op; favoriting a player that doesn't
// exist is a not-found error.
func (s *AuthService) AddFavorite(ctx context.Context, userID string, playerID int64) ([]int64, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("service/auth: checking player %d: %w", playerID, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	for _, id := range user.Favorites {
		if id == playerID {
			return user.Favorites, nil
		}
	}

	favorites := append(user.Favorites, playerID)
	if err := s.users.UpdateFavorites(ctx, userID, favorites); err != nil {
		return nil, fmt.Errorf("service/auth: updating favorites for user %s: %w", userID, err)
	}

	return favorites, nil
}

// RemoveFavorite drops playerID from the caller's favorites set. Removing an
// absent entry is a no-op.
func (s *AuthService) RemoveFavorite(ctx context.Context, userID string, playerID int64) ([]int64, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	favorites := make([]int64, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if id != playerID {
			favorites = append(favorites, id)
		}
	}

	if len(favorites) == len(user.Favorites) {
		return user.Favorites, nil
	}

	if err := s.users.UpdateFavorites(ctx, userID, favorites); err != nil {
		return nil, fmt.Errorf("service/auth: updating favorites for user %s: %w", userID, err)
	}

	return favorites, nil
}
