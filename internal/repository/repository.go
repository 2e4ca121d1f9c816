// Package repository defines the persistence interfaces. Services depend on
// these, never on the concrete SQLite implementation.
package repository

import (
	"context"

	"github.com/ekaraca/vspecs/internal/model"
)

// UserRepository is the persistence surface of the account directory.
type UserRepository interface {
	// Create inserts a new user. The repository assigns ID, CreatedAt and
	// UpdatedAt. A UNIQUE violation on username or email comes back as
	// apperror.ErrConflict.
	Create(ctx context.Context, user *model.User) error

	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateProfile replaces the user's setup and avatar fields and bumps
	// UpdatedAt. Nothing else is touched — username stays immutable.
	UpdateProfile(ctx context.Context, id string, setup model.Setup, avatar string) error

	// UpdateFavorites replaces the user's favorites set.
	UpdateFavorites(ctx context.Context, id string, favorites []int64) error
}

// PlayerRepository stores the pro player settings profiles.
type PlayerRepository interface {
	List(ctx context.Context) ([]model.Player, error)
	GetByID(ctx context.Context, id int64) (*model.Player, error)

	// Create inserts a player. A duplicate numeric ID is apperror.ErrConflict.
	Create(ctx context.Context, player *model.Player) error
	Update(ctx context.Context, player *model.Player) error
	Delete(ctx context.Context, id int64) error

	// UpsertByName inserts or updates keyed on the player's name — the
	// scraper's write path, where the aggregator has no stable IDs.
	UpsertByName(ctx context.Context, player *model.Player) error

	// ReplaceAll wipes the table and loads the given players in one
	// transaction. Used by the seed operation.
	ReplaceAll(ctx context.Context, players []model.Player) error
}
