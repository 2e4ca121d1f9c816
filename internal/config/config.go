// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the binaries need. All values come from
// environment variables (PORT, DB_PATH, JWT_SECRET, ...).
type Config struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port"`
	// DBPath is the SQLite database file.
	DBPath string `mapstructure:"db_path"`
	// JWTSecret signs session tokens. Mandatory — there is no default, a
	// missing or short secret fails startup loudly instead of silently
	// degrading to a weak built-in value.
	JWTSecret string `mapstructure:"jwt_secret"`

	// CoachAPIURL is the base URL of the chat-completion API.
	CoachAPIURL string `mapstructure:"coach_api_url"`
	// CoachAPIKey authenticates against the coach upstream. Optional: when
	// empty the server still starts and /api/chat reports an upstream error.
	CoachAPIKey string `mapstructure:"coach_api_key"`
	// CoachModel is the model name sent with each chat request.
	CoachModel string `mapstructure:"coach_model"`

	// UploadURL is the image host's upload endpoint.
	UploadURL string `mapstructure:"upload_url"`
	// UploadAPIKey authenticates uploads. Optional, same policy as the coach key.
	UploadAPIKey string `mapstructure:"upload_api_key"`

	// ScrapeURL is the aggregator list page cmd/scraper reads.
	ScrapeURL string `mapstructure:"scrape_url"`
	// ScrapeLimit caps how many rows the scraper takes (0 = all).
	ScrapeLimit int `mapstructure:"scrape_limit"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "data/vspecs.db")
	v.SetDefault("coach_api_url", "https://api.openai.com/v1")
	v.SetDefault("coach_model", "gpt-4o-mini")
	v.SetDefault("upload_url", "https://api.imgbb.com/1/upload")
	v.SetDefault("scrape_url", "https://prosettings.net/lists/valorant/")
	v.SetDefault("scrape_limit", 10)

	// AutomaticEnv alone doesn't make Unmarshal see env-only keys; bind the
	// ones without defaults explicitly.
	for _, key := range []string{"jwt_secret", "coach_api_key", "upload_api_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required — set it to at least 32 random bytes, e.g. JWT_SECRET=$(openssl rand -hex 32)")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("config: JWT_SECRET must be at least 16 characters")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid PORT %d", c.Port)
	}
	return nil
}
