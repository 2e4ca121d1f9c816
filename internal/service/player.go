package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/repository"
)

// PlayerService owns the pro-player catalogue: public reads, admin-gated
// writes (the gating itself happens in the middleware, not here).
type PlayerService struct {
	players repository.PlayerRepository
	logger  *slog.Logger
}

// NewPlayerService creates a PlayerService.
func NewPlayerService(players repository.PlayerRepository, logger *slog.Logger) *PlayerService {
	return &PlayerService{players: players, logger: logger}
}

// List returns all players.
func (s *PlayerService) List(ctx context.Context) ([]model.Player, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/player: listing players: %w", err)
	}
	return players, nil
}

// GetByID returns one player.
func (s *PlayerService) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/player: fetching player %d: %w", id, err)
	}
	return player, nil
}

// Create validates and inserts a new player. Name and team are the only
// required fields; a positive ID must be supplied by the admin (IDs come
// from the dataset, the store doesn't assign them).
func (s *PlayerService) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	if err := validatePlayer(player); err != nil {
		return nil, fmt.Errorf("service/player: %w", err)
	}

	if err := s.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("service/player: creating player: %w", err)
	}

	s.logger.Info("player created",
		slog.Int64("playerID", player.ID),
		slog.String("name", player.Name),
	)

	return player, nil
}

// Update replaces the player identified by id with the given record.
func (s *PlayerService) Update(ctx context.Context, id int64, player *model.Player) (*model.Player, error) {
	player.ID = id
	if err := validatePlayer(player); err != nil {
		return nil, fmt.Errorf("service/player: %w", err)
	}

	if err := s.players.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("service/player: updating player %d: %w", id, err)
	}

	s.logger.Info("player updated", slog.Int64("playerID", id))

	return player, nil
}

// Delete removes a player.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	if err := s.players.Delete(ctx, id); err != nil {
		return fmt.Errorf("service/player: deleting player %d: %w", id, err)
	}

	s.logger.Info("player deleted", slog.Int64("playerID", id))

	return nil
}

// Seed wipes the catalogue and loads the given dataset transactionally.
// Returns the number of players loaded.
func (s *PlayerService) Seed(ctx context.Context, players []model.Player) (int, error) {
	if err := s.players.ReplaceAll(ctx, players); err != nil {
		return 0, fmt.Errorf("service/player: seeding players: %w", err)
	}

	s.logger.Info("players seeded", slog.Int("count", len(players)))

	return len(players), nil
}

func validatePlayer(p *model.Player) error {
	switch {
	case p.ID <= 0:
		return apperror.ValidationFailed("id", "a positive player id is required")
	case p.Name == "":
		return apperror.ValidationFailed("name", "name is required")
	case p.Team == "":
		return apperror.ValidationFailed("team", "team is required")
	}
	return nil
}
