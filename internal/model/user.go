// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Identity is email + password: email is the login key, username is the
// display name. Both carry UNIQUE constraints in the store — a duplicate on
// either is a conflict, not a crash.
//
// WHY PasswordHash WITH json:"-"?
// The bcrypt digest must never leave the server. The `json:"-"` tag makes it
// impossible for a handler to leak it by accident: encoding/json skips the
// field no matter which endpoint serializes a User. The plaintext password is
// never stored or logged anywhere.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Username     string    `json:"username"   db:"username"` // unique, immutable after creation
	Email        string    `json:"email"      db:"email"`    // unique, login key
	PasswordHash string    `json:"-"          db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin"    db:"is_admin"`   // grants /api/admin/* access
	IsPremium    bool      `json:"isPremium"  db:"is_premium"` // reserved, no gated behaviour yet
	Avatar       string    `json:"avatar"     db:"avatar"`     // URL to a hosted image
	MySetup      Setup     `json:"mySetup"    db:"my_setup"`
	Favorites    []int64   `json:"favorites"  db:"favorites"` // player IDs, a set — order irrelevant
	CreatedAt    time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"  db:"updated_at"`
}

// Setup is the user's personal hardware/settings profile (the "my setup"
// section). Defaults mirror the store schema: dpi 800, sensitivity 0.3,
// rank "Unranked".
type Setup struct {
	Mouse       string  `json:"mouse"`
	DPI         int     `json:"dpi"`
	Sensitivity float64 `json:"sensitivity"`
	Crosshair   string  `json:"crosshair"` // in-game crosshair code
	Rank        string  `json:"rank"`
}

// DefaultSetup returns the Setup a freshly registered user starts with.
func DefaultSetup() Setup {
	return Setup{
		DPI:         800,
		Sensitivity: 0.3,
		Rank:        "Unranked",
	}
}

// SetupPatch is a partial update to a Setup. Nil fields mean "leave the
// stored value unchanged" — profile updates are merge-by-key, never a
// wholesale replacement, so a client that submits only {"dpi": 1600}
// doesn't wipe the rest of the profile.
type SetupPatch struct {
	Mouse       *string  `json:"mouse"`
	DPI         *int     `json:"dpi"`
	Sensitivity *float64 `json:"sensitivity"`
	Crosshair   *string  `json:"crosshair"`
	Rank        *string  `json:"rank"`
}

// Apply merges the patch into s, field by field.
func (p SetupPatch) Apply(s *Setup) {
	if p.Mouse != nil {
		s.Mouse = *p.Mouse
	}
	if p.DPI != nil {
		s.DPI = *p.DPI
	}
	if p.Sensitivity != nil {
		s.Sensitivity = *p.Sensitivity
	}
	if p.Crosshair != nil {
		s.Crosshair = *p.Crosshair
	}
	if p.Rank != nil {
		s.Rank = *p.Rank
	}
}
