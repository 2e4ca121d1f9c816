// Command scraper pulls current pro player settings from the public
// aggregator list and upserts them into the catalogue. Run it ad hoc or from
// cron; existing players are matched by name so repeat runs refresh rather
// than duplicate.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ekaraca/vspecs/internal/config"
	sqliteRepo "github.com/ekaraca/vspecs/internal/repository/sqlite"
	"github.com/ekaraca/vspecs/internal/scraper"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info("scraping player settings",
		slog.String("url", cfg.ScrapeURL),
		slog.Int("limit", cfg.ScrapeLimit),
	)

	players, err := scraper.New(cfg.ScrapeURL, cfg.ScrapeLimit).Scrape(ctx)
	if err != nil {
		logger.Error("scrape failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var saved int
	for i := range players {
		if err := db.UpsertByName(ctx, &players[i]); err != nil {
			logger.Warn("skipping player",
				slog.String("name", players[i].Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		saved++
	}

	logger.Info("scrape complete",
		slog.Int("scraped", len(players)),
		slog.Int("saved", saved),
	)
}
