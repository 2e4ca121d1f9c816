package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
)

func mustCreatePlayer(t *testing.T, db *DB, p *model.Player) {
	t.Helper()
	if err := db.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create test player %q: %v", p.Name, err)
	}
}

func TestPlayerCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	want := testPlayer(200, "TenZ")
	mustCreatePlayer(t, db, want)

	got, err := db.GetByID(context.Background(), 200)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	// The nested records go through JSON columns; the round trip must be
	// lossless.
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetByID() = %+v, want %+v", got, want)
	}
}

func TestPlayerGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 999)
	if err == nil {
		t.Fatal("GetByID() should have failed for a nonexistent player")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestPlayerCreate_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))

	err := db.Create(context.Background(), testPlayer(200, "aspas"))
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestPlayerCreate_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))

	err := db.Create(context.Background(), testPlayer(201, "TenZ"))
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestPlayerList_OrderedByID(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(203, "Demon1"))
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))
	mustCreatePlayer(t, db, testPlayer(201, "aspas"))

	players, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(players) != 3 {
		t.Fatalf("List() returned %d players, want 3", len(players))
	}
	for i, wantID := range []int64{200, 201, 203} {
		if players[i].ID != wantID {
			t.Errorf("players[%d].ID = %d, want %d", i, players[i].ID, wantID)
		}
	}
}

func TestPlayerList_EmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	players, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// Serializes as [] rather than null.
	if players == nil {
		t.Error("List() on empty table = nil, want empty slice")
	}
}

func TestPlayerUpdate(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))

	updated := testPlayer(200, "TenZ")
	updated.Team = "G2 Esports"
	updated.DPI = 1600
	updated.Hardware.Mouse = "Lamzu Maya X"
	if err := db.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.GetByID(context.Background(), 200)
	if err != nil {
		t.Fatalf("GetByID() after update: %v", err)
	}
	if got.Team != "G2 Esports" {
		t.Errorf("Team = %q, want %q", got.Team, "G2 Esports")
	}
	if got.DPI != 1600 {
		t.Errorf("DPI = %d, want 1600", got.DPI)
	}
	if got.Hardware.Mouse != "Lamzu Maya X" {
		t.Errorf("Hardware.Mouse = %q, want %q", got.Hardware.Mouse, "Lamzu Maya X")
	}
}

func TestPlayerUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Update(context.Background(), testPlayer(404, "Nobody"))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestPlayerDelete(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))

	if err := db.Delete(context.Background(), 200); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.GetByID(context.Background(), 200)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestPlayerDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Delete(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPlayerUpsertByName_InsertsNew(t *testing.T) {
	db := newTestDB(t)

	p := testPlayer(200, "TenZ")
	if err := db.UpsertByName(context.Background(), p); err != nil {
		t.Fatalf("UpsertByName() error = %v", err)
	}

	got, err := db.GetByID(context.Background(), 200)
	if err != nil {
		t.Fatalf("GetByID() after upsert: %v", err)
	}
	if got.Name != "TenZ" {
		t.Errorf("Name = %q, want %q", got.Name, "TenZ")
	}
}

func TestPlayerUpsertByName_UpdatesExistingKeepingID(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(200, "TenZ"))

	// A later scrape assigns a different positional ID to the same name; the
	// stored row must keep its original ID.
	rescraped := testPlayer(215, "TenZ")
	rescraped.Team = "G2 Esports"
	if err := db.UpsertByName(context.Background(), rescraped); err != nil {
		t.Fatalf("UpsertByName() error = %v", err)
	}

	if rescraped.ID != 200 {
		t.Errorf("UpsertByName() left ID = %d, want the existing 200", rescraped.ID)
	}

	got, err := db.GetByID(context.Background(), 200)
	if err != nil {
		t.Fatalf("GetByID() after re-scrape: %v", err)
	}
	if got.Team != "G2 Esports" {
		t.Errorf("Team = %q, want %q", got.Team, "G2 Esports")
	}

	players, _ := db.List(context.Background())
	if len(players) != 1 {
		t.Errorf("List() returned %d players after upsert, want 1", len(players))
	}
}

func TestPlayerReplaceAll(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(1, "OldPlayer"))

	fresh := []model.Player{
		*testPlayer(200, "TenZ"),
		*testPlayer(201, "aspas"),
	}
	if err := db.ReplaceAll(context.Background(), fresh); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	players, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() after ReplaceAll: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("List() returned %d players, want 2", len(players))
	}
	if players[0].Name != "TenZ" || players[1].Name != "aspas" {
		t.Errorf("unexpected players after seed: %v, %v", players[0].Name, players[1].Name)
	}

	// The old row is gone.
	if _, err := db.GetByID(context.Background(), 1); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(1) error = %v, want ErrNotFound", err)
	}
}

func TestPlayerReplaceAll_FailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	mustCreatePlayer(t, db, testPlayer(1, "Survivor"))

	// Duplicate IDs inside the batch make the second insert fail; the DELETE
	// at the start of the transaction must be rolled back with it.
	bad := []model.Player{
		*testPlayer(200, "TenZ"),
		*testPlayer(200, "aspas"),
	}
	if err := db.ReplaceAll(context.Background(), bad); err == nil {
		t.Fatal("ReplaceAll() should have failed on duplicate IDs")
	}

	players, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() after failed seed: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Survivor" {
		t.Errorf("table changed despite rollback: %+v", players)
	}
}
