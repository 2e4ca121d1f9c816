package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
)

// createTestUser inserts a user with sensible defaults and fails the test on
// error.
func createTestUser(t *testing.T, db *DB, username, email string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		MySetup:      model.DefaultSetup(),
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Username:     "radiantwannabe",
		Email:        "radiant@example.com",
		PasswordHash: "digest",
		MySetup:      model.DefaultSetup(),
	}

	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The repository assigns identity and timestamps in-place.
	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
	if user.UpdatedAt.IsZero() {
		t.Error("Create() did not set user.UpdatedAt")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "taken", "first@example.com")

	dup := &model.User{
		Username:     "taken",
		Email:        "second@example.com",
		PasswordHash: "digest",
	}
	err := db.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("Create() should have failed for a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
	if !strings.Contains(err.Error(), "username") {
		t.Errorf("conflict message should name the username field, got %q", err.Error())
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "first", "taken@example.com")

	dup := &model.User{
		Username:     "second",
		Email:        "taken@example.com",
		PasswordHash: "digest",
	}
	err := db.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("Create() should have failed for a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("conflict message should name the email field, got %q", err.Error())
	}
}

func TestUserGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "lookup_user", "lookup@example.com")

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Username != "lookup_user" {
		t.Errorf("Username = %q, want %q", found.Username, "lookup_user")
	}
	if found.MySetup.DPI != 800 {
		t.Errorf("MySetup.DPI = %d, want 800 (default setup)", found.MySetup.DPI)
	}
	if found.MySetup.Rank != "Unranked" {
		t.Errorf("MySetup.Rank = %q, want %q", found.MySetup.Rank, "Unranked")
	}
	if found.Favorites == nil {
		t.Error("Favorites should round-trip as an empty slice, not nil")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "nonexistent-id")
	if err == nil {
		t.Fatal("GetByID() should have failed for a nonexistent ID")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "email_user", "byemail@example.com")

	found, err := db.GetByEmail(context.Background(), "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "setup_user", "setup@example.com")

	newSetup := model.Setup{
		Mouse:       "Logitech G Pro X Superlight",
		DPI:         1600,
		Sensitivity: 0.245,
		Crosshair:   "0;P;c;1",
		Rank:        "Immortal 2",
	}
	if err := db.UpdateProfile(context.Background(), created.ID, newSetup, "https://img.example.com/a.png"); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() after update: %v", err)
	}
	if found.MySetup != newSetup {
		t.Errorf("MySetup = %+v, want %+v", found.MySetup, newSetup)
	}
	if found.Avatar != "https://img.example.com/a.png" {
		t.Errorf("Avatar = %q, want the uploaded URL", found.Avatar)
	}
	// Identity fields stay put.
	if found.Username != "setup_user" {
		t.Errorf("Username changed to %q", found.Username)
	}
	if !found.UpdatedAt.After(created.UpdatedAt) && !found.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}
}

func TestUserUpdateProfile_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateProfile(context.Background(), "ghost", model.DefaultSetup(), "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdateFavorites_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "fav_user", "fav@example.com")

	if err := db.UpdateFavorites(context.Background(), created.ID, []int64{200, 207}); err != nil {
		t.Fatalf("UpdateFavorites() error = %v", err)
	}

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() after favorites update: %v", err)
	}
	if len(found.Favorites) != 2 || found.Favorites[0] != 200 || found.Favorites[1] != 207 {
		t.Errorf("Favorites = %v, want [200 207]", found.Favorites)
	}

	// Nil means empty, not "leave unchanged".
	if err := db.UpdateFavorites(context.Background(), created.ID, nil); err != nil {
		t.Fatalf("UpdateFavorites(nil) error = %v", err)
	}
	found, _ = db.GetByID(context.Background(), created.ID)
	if len(found.Favorites) != 0 {
		t.Errorf("Favorites after nil update = %v, want empty", found.Favorites)
	}
}
