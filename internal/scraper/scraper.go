// Package scraper pulls player settings rows from an aggregator site's
// list page. Used only by the standalone cmd/scraper batch binary — the
// running service never scrapes.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ekaraca/vspecs/internal/model"
)

// DefaultURL is the aggregator's Valorant list page.
const DefaultURL = "https://prosettings.net/lists/valorant/"

// placeholderImage stands in for player photos — the aggregator's images
// aren't ours to rehost.
const placeholderImage = "https://via.placeholder.com/150/FF4655/FFFFFF?text=PRO"

// idBase keeps scraped IDs clear of the seed dataset's ID range.
const idBase = 200

// Scraper fetches and parses the settings table.
type Scraper struct {
	url        string
	limit      int
	httpClient *http.Client
}

// New creates a Scraper for the given list page URL. limit caps how many
// rows are taken (0 means all).
func New(url string, limit int) *Scraper {
	return &Scraper{
		url:        url,
		limit:      limit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Scrape fetches the page and parses it.
func (s *Scraper) Scrape(ctx context.Context) ([]model.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("scraper: creating request: %w", err)
	}
	// A bare Go user agent gets blocked by the aggregator's CDN.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; vspecs-scraper)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper: fetching %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scraper: %s returned status %d", s.url, resp.StatusCode)
	}

	players, err := s.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return players, nil
}

// Parse reads the settings table out of the page body.
//
// Expected row shape (the aggregator's current column order — index-based,
// so a site redesign breaks this loudly, not silently):
//
//	td[0] name, td[1] team, td[3] dpi, td[4] sensitivity, td[6] mouse
//
// Rows with fewer than 5 cells (ads, section separators) are skipped.
func (s *Scraper) Parse(body io.Reader) ([]model.Player, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("scraper: parsing page: %w", err)
	}

	var players []model.Player
	doc.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if s.limit > 0 && len(players) >= s.limit {
			return false
		}

		cells := row.Find("td")
		if cells.Length() < 5 {
			return true
		}

		name := text(cells, 0)
		if name == "" {
			return true
		}

		team := text(cells, 1)
		if team == "" {
			team = "Free Agent"
		}

		dpi, err := strconv.Atoi(text(cells, 3))
		if err != nil {
			dpi = 800
		}

		sensitivity := text(cells, 4)
		if sensitivity == "" {
			sensitivity = "0.3"
		}

		players = append(players, model.Player{
			ID:          int64(idBase + i),
			Name:        name,
			Team:        team,
			DPI:         dpi,
			Sensitivity: sensitivity,
			Roles:       []string{"Pro Player"},
			Hardware: model.Hardware{
				Mouse: text(cells, 6),
			},
			Image: placeholderImage,
		})
		return true
	})

	return players, nil
}

func text(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}
