package poster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestFetchTMDB(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, zerolog.Nop())

	path, err := f.FetchTMDB(context.Background(), server.URL+"/w500/dune.jpg", "Dune: Part Two")
	if err != nil {
		t.Fatalf("FetchTMDB() error = %v", err)
	}

	want := filepath.Join(dir, "tmdb_Dune__Part_Two.jpg")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading poster: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("poster content = %q", data)
	}

	// Second fetch must reuse the cached file.
	if _, err := f.FetchTMDB(context.Background(), server.URL+"/w500/dune.jpg", "Dune: Part Two"); err != nil {
		t.Fatalf("cached FetchTMDB() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("got %d HTTP requests, want 1", requests)
	}
}

func TestFetchTMDBErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir(), zerolog.Nop())
	if _, err := f.FetchTMDB(context.Background(), server.URL+"/missing.jpg", "Dune"); err == nil {
		t.Error("FetchTMDB() succeeded on 404")
	}
}
