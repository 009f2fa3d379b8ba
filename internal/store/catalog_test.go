package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferminmg/scrapingcines/internal/catalog"
)

func TestLoadCatalogMissingFile(t *testing.T) {
	movies, err := LoadCatalog(filepath.Join(t.TempDir(), "peliculas.json"))
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestLoadCatalogEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peliculas.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	movies, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestLoadCatalogMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peliculas.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	movies, err := LoadCatalog(path)
	assert.Error(t, err)
	assert.Empty(t, movies)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peliculas.json")
	movies := []catalog.Movie{
		{
			Title:    "El Año del Descubrimiento",
			TMDBID:   655010,
			Director: "Luis López Carrasco",
			Year:     "2020",
			Cinema:   "Filmoteca de Navarra",
			Showtimes: []catalog.Showtime{
				{Date: "2025-07-01", Time: "19:30", TicketURL: "https://bacantix.com/entrada?id=1&language=VOSE"},
			},
		},
	}

	require.NoError(t, SaveCatalog(path, movies))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, movies, loaded)
}

func TestSaveCatalogKeepsAccentsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peliculas.json")
	movies := []catalog.Movie{{Title: "El Año del Descubrimiento", Showtimes: []catalog.Showtime{}}}

	require.NoError(t, SaveCatalog(path, movies))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "El Año del Descubrimiento")
	assert.Contains(t, string(data), "título", "Spanish field names must survive on disk")
	assert.NotContains(t, string(data), `ñ`)
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peliculas_filmoteca.json")
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	now := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	backupPath, err := Backup(path, backupDir, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(backupDir, "peliculas_filmoteca.json.20250601_183000.bak"), backupPath)
	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBackupMissingSource(t *testing.T) {
	dir := t.TempDir()
	backupPath, err := Backup(filepath.Join(dir, "peliculas.json"), filepath.Join(dir, "backups"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, backupPath)
}

func TestSaveCatalogDoesNotLeaveTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peliculas.json")
	require.NoError(t, SaveCatalog(path, []catalog.Movie{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}
