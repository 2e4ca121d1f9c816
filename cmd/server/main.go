// Command server runs the v-specs HTTP API.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ekaraca/vspecs/internal/coach"
	"github.com/ekaraca/vspecs/internal/config"
	"github.com/ekaraca/vspecs/internal/imagehost"
	"github.com/ekaraca/vspecs/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The SQLite driver won't create parent directories for us.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	coachClient := coach.New(cfg.CoachAPIURL, cfg.CoachAPIKey, cfg.CoachModel)
	uploader := imagehost.New(cfg.UploadURL, cfg.UploadAPIKey)

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		DBPath:    cfg.DBPath,
		JWTSecret: cfg.JWTSecret,
	}, coachClient, uploader, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
