package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user, assigning the ID and timestamps.
//
// Uniqueness is the store's job: the UNIQUE constraints on username and
// email decide races between concurrent registrations. A violation comes
// back as apperror.ErrConflict with a message naming the offending field.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favorites == nil {
		user.Favorites = []int64{}
	}

	favorites, err := marshalJSON(user.Favorites)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, is_admin, is_premium,
		                    avatar, mouse, dpi, sensitivity, crosshair, rank, favorites,
		                    created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.IsPremium,
		user.Avatar,
		user.MySetup.Mouse,
		user.MySetup.DPI,
		user.MySetup.Sensitivity,
		user.MySetup.Crosshair,
		user.MySetup.Rank,
		favorites,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sqlite: inserting user: %w", conflictFor(err))
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// conflictFor names the duplicated field from the constraint message.
func conflictFor(err error) *apperror.AppError {
	switch {
	case strings.Contains(err.Error(), "users.username"):
		return apperror.Conflict("username already in use")
	case strings.Contains(err.Error(), "users.email"):
		return apperror.Conflict("email already in use")
	default:
		return apperror.Conflict("username or email already in use")
	}
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email — the login lookup.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u         model.User
		favorites string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, is_admin, is_premium,
		        avatar, mouse, dpi, sensitivity, crosshair, rank, favorites,
		        created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsPremium,
		&u.Avatar,
		&u.MySetup.Mouse,
		&u.MySetup.DPI,
		&u.MySetup.Sensitivity,
		&u.MySetup.Crosshair,
		&u.MySetup.Rank,
		&favorites,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	u.Favorites = []int64{}
	if err := unmarshalJSON(favorites, &u.Favorites); err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateProfile replaces the setup columns and avatar for one user and bumps
// updated_at. Username, email and the password digest are untouched.
func (db *DB) UpdateProfile(ctx context.Context, id string, setup model.Setup, avatar string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET avatar = ?, mouse = ?, dpi = ?, sensitivity = ?, crosshair = ?, rank = ?, updated_at = ?
		 WHERE id = ?`,
		avatar,
		setup.Mouse,
		setup.DPI,
		setup.Sensitivity,
		setup.Crosshair,
		setup.Rank,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile for user %s: %w", id, err)
	}

	return requireRow(res, "user", id)
}

// UpdateFavorites replaces the favorites set for one user.
func (db *DB) UpdateFavorites(ctx context.Context, id string, favorites []int64) error {
	if favorites == nil {
		favorites = []int64{}
	}
	encoded, err := marshalJSON(favorites)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET favorites = ?, updated_at = ? WHERE id = ?`,
		encoded,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating favorites for user %s: %w", id, err)
	}

	return requireRow(res, "user", id)
}

// requireRow turns a zero-row UPDATE/DELETE into apperror.ErrNotFound.
func requireRow(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: reading rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
