package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/repository"
)

// compile-time check that *DB implements repository.PlayerRepository
var _ repository.PlayerRepository = (*DB)(nil)

const playerColumns = `id, name, team, region, agents, roles, sensitivity, crosshair,
	resolution, dpi, zoom_sensitivity, keybinds, hardware, image, social, shop_links`

// List returns every player, ordered by ID for stable output.
func (db *DB) List(ctx context.Context) ([]model.Player, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing players: %w", err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating players: %w", err)
	}

	return players, nil
}

// GetByID retrieves one player. Returns apperror.ErrNotFound if absent.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id,
	)

	p, err := scanPlayer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("player", fmt.Sprint(id))
		}
		return nil, err
	}

	return p, nil
}

// Create inserts a player. Duplicate id or name is apperror.ErrConflict.
func (db *DB) Create(ctx context.Context, player *model.Player) error {
	cols, err := playerValues(player)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cols...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sqlite: inserting player: %w",
				apperror.Conflict(fmt.Sprintf("player with id %d or name %q already exists", player.ID, player.Name)))
		}
		return fmt.Errorf("sqlite: inserting player %d: %w", player.ID, err)
	}

	return nil
}

// Update replaces every field of the player row identified by player.ID.
func (db *DB) Update(ctx context.Context, player *model.Player) error {
	cols, err := playerValues(player)
	if err != nil {
		return err
	}
	// playerValues puts id first; rotate it to the end for the WHERE clause.
	args := append(cols[1:], cols[0])

	res, err := db.conn.ExecContext(ctx,
		`UPDATE players
		 SET name = ?, team = ?, region = ?, agents = ?, roles = ?, sensitivity = ?,
		     crosshair = ?, resolution = ?, dpi = ?, zoom_sensitivity = ?,
		     keybinds = ?, hardware = ?, image = ?, social = ?, shop_links = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating player %d: %w", player.ID, err)
	}

	return requireRow(res, "player", fmt.Sprint(player.ID))
}

// Delete removes a player by ID.
func (db *DB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting player %d: %w", id, err)
	}

	return requireRow(res, "player", fmt.Sprint(id))
}

// UpsertByName inserts or updates keyed on the player's name. The scraper has
// no stable IDs, so name is the natural key there; on update the existing row
// keeps its ID.
func (db *DB) UpsertByName(ctx context.Context, player *model.Player) error {
	var existingID int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM players WHERE name = ?`, player.Name,
	).Scan(&existingID)

	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up player by name %q: %w", player.Name, err)
	}

	if err == nil {
		player.ID = existingID
		return db.Update(ctx, player)
	}

	return db.Create(ctx, player)
}

// ReplaceAll wipes the players table and loads the given set in a single
// transaction — either the whole seed lands or none of it does.
func (db *DB) ReplaceAll(ctx context.Context, players []model.Player) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("sqlite: clearing players: %w", err)
	}

	for i := range players {
		cols, err := playerValues(&players[i])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (`+playerColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cols...,
		); err != nil {
			return fmt.Errorf("sqlite: seeding player %q: %w", players[i].Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing seed transaction: %w", err)
	}

	return nil
}

// playerValues flattens a Player into column order, encoding the nested
// records as JSON.
func playerValues(p *model.Player) ([]any, error) {
	if p.Agents == nil {
		p.Agents = []string{}
	}
	if p.Roles == nil {
		p.Roles = []string{}
	}

	agents, err := marshalJSON(p.Agents)
	if err != nil {
		return nil, err
	}
	roles, err := marshalJSON(p.Roles)
	if err != nil {
		return nil, err
	}
	keybinds, err := marshalJSON(p.Keybinds)
	if err != nil {
		return nil, err
	}
	hardware, err := marshalJSON(p.Hardware)
	if err != nil {
		return nil, err
	}
	social, err := marshalJSON(p.Social)
	if err != nil {
		return nil, err
	}
	shopLinks, err := marshalJSON(p.ShopLinks)
	if err != nil {
		return nil, err
	}

	return []any{
		p.ID, p.Name, p.Team, p.Region, agents, roles, p.Sensitivity, p.Crosshair,
		p.Resolution, p.DPI, p.ZoomSensitivity, keybinds, hardware, p.Image, social, shopLinks,
	}, nil
}

// scanPlayer reads one row through the given Scan func (works for both
// sql.Row and sql.Rows).
func scanPlayer(scan func(dest ...any) error) (*model.Player, error) {
	var (
		p                                          model.Player
		agents, roles, keybinds, hardware, social  string
		shopLinks                                  string
	)

	err := scan(
		&p.ID, &p.Name, &p.Team, &p.Region, &agents, &roles, &p.Sensitivity, &p.Crosshair,
		&p.Resolution, &p.DPI, &p.ZoomSensitivity, &keybinds, &hardware, &p.Image, &social, &shopLinks,
	)
	if err != nil {
		return nil, err
	}

	p.Agents = []string{}
	p.Roles = []string{}
	for _, col := range []struct {
		data string
		dest any
	}{
		{agents, &p.Agents},
		{roles, &p.Roles},
		{keybinds, &p.Keybinds},
		{hardware, &p.Hardware},
		{social, &p.Social},
		{shopLinks, &p.ShopLinks},
	} {
		if err := unmarshalJSON(col.data, col.dest); err != nil {
			return nil, err
		}
	}

	return &p, nil
}
