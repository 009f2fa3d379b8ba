// Package poster downloads poster images into the shared images directory.
// TMDB posters get a "tmdb_" filename prefix; the merge policy uses that
// prefix to tell TMDB artwork apart from site screenshots.
package poster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Fetcher downloads and caches poster images on disk.
type Fetcher struct {
	httpClient *http.Client
	dir        string
	logger     zerolog.Logger
}

// NewFetcher creates a fetcher storing images under dir.
func NewFetcher(dir string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dir:        dir,
		logger:     logger.With().Str("component", "poster").Logger(),
	}
}

// FetchTMDB downloads a TMDB poster for the titled movie and returns the
// local path. An already-downloaded poster is reused without touching the
// network.
func (f *Fetcher) FetchTMDB(ctx context.Context, imageURL, movieTitle string) (string, error) {
	name := "tmdb_" + unsafeChars.ReplaceAllString(movieTitle, "_") + ".jpg"
	dest := filepath.Join(f.dir, name)

	if _, err := os.Stat(dest); err == nil {
		f.logger.Debug().Str("path", dest).Msg("Poster already downloaded")
		return dest, nil
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster download returned status %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create poster file: %w", err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write poster: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to close poster file: %w", err)
	}

	f.logger.Info().Str("path", dest).Msg("Poster downloaded")
	return dest, nil
}
