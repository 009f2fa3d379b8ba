// Package equivalence persists the normalized-title → TMDB id mapping that
// shortcuts repeated TMDB lookups and lets an operator pin a title to a
// specific id when automatic matching picks wrong.
package equivalence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferminmg/scrapingcines/internal/catalog"
	"github.com/ferminmg/scrapingcines/internal/title"
)

// Entry is one cached equivalence. A nil/zero TMDBID marks a pending
// suggestion: the title failed automatic matching and is waiting for an
// operator to fill the id in.
type Entry struct {
	TMDBID        int    `json:"tmdb_id,omitempty"`
	OriginalTitle string `json:"titulo_original,omitempty"`
	Year          string `json:"anio,omitempty"`
}

// Store maps normalized titles to their cached equivalence. Keys are always
// produced by title.Normalize; raw titles never appear as keys.
type Store map[string]Entry

// Load reads the store at path. A missing file yields an empty store, as
// does unreadable or malformed content: the cache is an accelerator, losing
// it must never fail a run. Files in the legacy shape, an array of full
// movie records, are converted on the fly: the key is derived from each
// record's title and only entries carrying both a title and a TMDB id
// survive.
func Load(path string) Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return Store{}
	}

	var store Store
	if err := json.Unmarshal(data, &store); err == nil {
		if store == nil {
			store = Store{}
		}
		return store
	}

	var legacy []catalog.Movie
	if err := json.Unmarshal(data, &legacy); err != nil {
		return Store{}
	}

	store = Store{}
	for _, movie := range legacy {
		key := title.Normalize(movie.Title)
		if key == "" || movie.TMDBID == 0 {
			continue
		}
		store[key] = Entry{
			TMDBID:        movie.TMDBID,
			OriginalTitle: movie.OriginalTitle,
			Year:          movie.Year,
		}
	}
	return store
}

// Lookup normalizes the title and returns its entry, if any.
func (s Store) Lookup(rawTitle string) (Entry, bool) {
	entry, ok := s[title.Normalize(rawTitle)]
	return entry, ok
}

// Upsert records an equivalence for the title. An existing entry is only
// replaced when the new one carries a TMDB id and the old one does not; a
// populated entry is never downgraded to an emptier one.
func (s Store) Upsert(rawTitle string, entry Entry) {
	key := title.Normalize(rawTitle)
	if key == "" {
		return
	}
	existing, ok := s[key]
	if ok && (existing.TMDBID != 0 || entry.TMDBID == 0) {
		return
	}
	s[key] = entry
}

// Save writes the store to path, always in the mapping shape and never back
// to the legacy array. The write goes through a temp file and rename so a
// crash cannot leave a truncated cache behind.
func Save(s Store, path string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode equivalence store: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write equivalence store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace equivalence store: %w", err)
	}
	return nil
}
