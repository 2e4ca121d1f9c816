package sqlite

import (
	"testing"

	"github.com/ekaraca/vspecs/internal/model"
)

// newTestDB returns a DB backed by an in-memory SQLite database with the
// schema applied. Each call gets a fresh, isolated database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPlayer(id int64, name string) *model.Player {
	return &model.Player{
		ID:          id,
		Name:        name,
		Team:        "Sentinels",
		Region:      "NA",
		Agents:      []string{"Jett", "Raze"},
		Roles:       []string{"Duelist"},
		Sensitivity: "0.408",
		Crosshair:   "0;s;1;P;c;5;o;1",
		Resolution:  "1920x1080",
		DPI:         800,
		Keybinds: model.Keybinds{
			Ability1: "E",
			Ability2: "Q",
			Ultimate: "X",
		},
		Hardware: model.Hardware{
			Mouse:    "Finalmouse Starlight-12",
			Keyboard: "Wooting 60HE",
			Monitor:  "ZOWIE XL2566K",
		},
		Social: model.Social{
			Twitter: "https://twitter.com/" + name,
		},
	}
}
