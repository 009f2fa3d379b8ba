// Package store reads and writes the persisted JSON documents: the movie
// catalog and its timestamped backups. Files are pretty-printed UTF-8 with
// accents left unescaped, matching what the admin tools and the public site
// expect.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ferminmg/scrapingcines/internal/catalog"
)

// LoadCatalog reads a catalog file: an array of movie records. A missing or
// empty file is a valid empty catalog. Malformed content is reported so the
// caller can decide whether to proceed against an empty catalog.
func LoadCatalog(path string) ([]catalog.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []catalog.Movie{}, nil
		}
		return []catalog.Movie{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []catalog.Movie{}, nil
	}

	var movies []catalog.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return []catalog.Movie{}, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	return movies, nil
}

// SaveCatalog writes the catalog atomically: encode, write to a temp file in
// the same directory, rename over the target. A crash mid-write leaves the
// previous file intact.
func SaveCatalog(path string, movies []catalog.Movie) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(movies); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace catalog %s: %w", path, err)
	}
	return nil
}

// Backup copies the catalog file into backupDir under a timestamped name,
// e.g. peliculas_filmoteca.json.20250601_183000.bak. It returns the backup
// path, or "" without error when there is nothing to back up yet.
func Backup(path, backupDir string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s for backup: %w", path, err)
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s.%s.bak", filepath.Base(path), now.Format("20060102_150405"))
	backupPath := filepath.Join(backupDir, name)
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}
