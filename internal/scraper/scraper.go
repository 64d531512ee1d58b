package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/curling-standings/internal/logger"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

const (
	DefaultBaseURL = "https://livescores.worldcurling.org/og/aspnet"
	UserAgent      = "FantasyOlympicCurling/1.0 (+for personal, low-volume use; contact site owner if needed)"
	Accept         = "text/html,application/xhtml+xml"
	Timeout        = 30 * time.Second
)

// ErrTableNotFound is returned when a page has no recognizable standings table
var ErrTableNotFound = errors.New("standings table not found")

// Scraper fetches and parses World Curling standings and games pages
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a Scraper for the site rooted at baseURL (DefaultBaseURL if empty)
func New(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// StandingsURL returns the standings page for a division
func (s *Scraper) StandingsURL(div standings.Division) string {
	return fmt.Sprintf("%s/standingsall.aspx?EventID=%d", s.baseURL, div.ID)
}

// GamesURL returns the games page for a division
func (s *Scraper) GamesURL(div standings.Division) string {
	return fmt.Sprintf("%s/games.aspx?EventID=%d", s.baseURL, div.ID)
}

// FetchStandings fetches one division's standings table
func (s *Scraper) FetchStandings(ctx context.Context, div standings.Division) ([]standings.Row, error) {
	doc, err := s.fetchDocument(ctx, s.StandingsURL(div))
	if err != nil {
		return nil, err
	}

	rows, err := standingsFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.StandingsURL(div), err)
	}
	return rows, nil
}

// FetchSchedule fetches one division's games page and returns the games not yet completed
func (s *Scraper) FetchSchedule(ctx context.Context, div standings.Division) ([]standings.Game, error) {
	doc, err := s.fetchDocument(ctx, s.GamesURL(div))
	if err != nil {
		return nil, err
	}

	return parseScheduleRows(doc, div), nil
}

// fetchDocument issues a single GET and parses the body as HTML
func (s *Scraper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("upstream.fetch", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", Accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
