package model

// Player is a professional player's public settings profile. IDs are numeric
// and come from the dataset (seed file or scraper), not from the store.
//
// Only Name and Team are required — everything else is whatever the source
// happened to publish, empty values included.
type Player struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Team            string    `json:"team"`
	Region          string    `json:"region"`
	Agents          []string  `json:"agents"`
	Roles           []string  `json:"roles"`
	Sensitivity     string    `json:"sensitivity"` // kept as text: sources mix "0.35" and "0.35 @ 800"
	Crosshair       string    `json:"crosshair"`
	Resolution      string    `json:"resolution"`
	DPI             int       `json:"dpi"`
	ZoomSensitivity float64   `json:"zoom_sensitivity"`
	Keybinds        Keybinds  `json:"keybinds"`
	Hardware        Hardware  `json:"hardware"`
	Image           string    `json:"image"`
	Social          Social    `json:"social"`
	ShopLinks       ShopLinks `json:"shopLinks"`
}

// Keybinds are the player's ability bindings.
type Keybinds struct {
	Ability1 string `json:"ability1"`
	Ability2 string `json:"ability2"`
	Ultimate string `json:"ultimate"`
}

// Hardware is the player's peripheral loadout.
type Hardware struct {
	Mouse    string `json:"mouse"`
	Keyboard string `json:"keyboard"`
	Monitor  string `json:"monitor"`
	Headset  string `json:"headset"`
}

// Social holds the player's public profiles.
type Social struct {
	Twitter string `json:"twitter"`
	Twitch  string `json:"twitch"`
}

// ShopLinks holds affiliate links for the player's gear.
type ShopLinks struct {
	Mouse    string `json:"mouse"`
	Keyboard string `json:"keyboard"`
	Monitor  string `json:"monitor"`
	Headset  string `json:"headset"`
}
