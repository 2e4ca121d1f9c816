// Package sqlite implements the repository interfaces on SQLite.
//
// WHY modernc.org/sqlite?
// Pure Go translation of SQLite — no CGo, no C toolchain, cross-compiles
// anywhere Go does. The blank import below registers it with database/sql as
// the driver named "sqlite".
//
// The store's job in this system is deliberately small: durable documents
// plus UNIQUE enforcement on users.username and users.email. Concurrent
// duplicate registrations are resolved entirely by those constraints —
// exactly one insert wins, the loser gets a conflict. No application-level
// locking exists anywhere above this package.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements repository.UserRepository
// and repository.PlayerRepository.
//
// sql.DB is a pool, not a single connection — it owns its own internal
// concurrency control, so one *DB is shared by every request. Lifecycle is
// explicit: server.New opens it, shutdown closes it.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests) and runs the
// schema migration.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force the first real connection now — a bad path or permissions issue
	// should surface at startup, not on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — one writer, many
	// readers, which is exactly a web server's access pattern.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always deferred wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// The Player record's nested pieces (agents, roles, keybinds, hardware,
// social, shop links) are stored as JSON text columns — they're opaque
// documents to the store, never queried by sub-field.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin      INTEGER NOT NULL DEFAULT 0,
			is_premium    INTEGER NOT NULL DEFAULT 0,
			avatar        TEXT NOT NULL DEFAULT '',
			mouse         TEXT NOT NULL DEFAULT '',
			dpi           INTEGER NOT NULL DEFAULT 800,
			sensitivity   REAL NOT NULL DEFAULT 0.3,
			crosshair     TEXT NOT NULL DEFAULT '',
			rank          TEXT NOT NULL DEFAULT 'Unranked',
			favorites     TEXT NOT NULL DEFAULT '[]',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS players (
			id               INTEGER PRIMARY KEY,
			name             TEXT NOT NULL,
			team             TEXT NOT NULL,
			region           TEXT NOT NULL DEFAULT '',
			agents           TEXT NOT NULL DEFAULT '[]',
			roles            TEXT NOT NULL DEFAULT '[]',
			sensitivity      TEXT NOT NULL DEFAULT '',
			crosshair        TEXT NOT NULL DEFAULT '',
			resolution       TEXT NOT NULL DEFAULT '',
			dpi              INTEGER NOT NULL DEFAULT 0,
			zoom_sensitivity REAL NOT NULL DEFAULT 0,
			keybinds         TEXT NOT NULL DEFAULT '{}',
			hardware         TEXT NOT NULL DEFAULT '{}',
			image            TEXT NOT NULL DEFAULT '',
			social           TEXT NOT NULL DEFAULT '{}',
			shop_links       TEXT NOT NULL DEFAULT '{}'
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name ON players(name);
	`)
	if err != nil {
		return fmt.Errorf("creating players table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as "constraint failed: UNIQUE constraint
// failed: <table>.<column>"; matching the message is the driver's documented
// shape, there is no typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// marshalJSON / unmarshalJSON are scan helpers for the JSON text columns.

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("sqlite: encoding json column: %w", err)
	}
	return string(b), nil
}

func unmarshalJSON(data string, v any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("sqlite: decoding json column: %w", err)
	}
	return nil
}
