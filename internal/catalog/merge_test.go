package catalog

import (
	"reflect"
	"testing"
)

func TestMergeFillsEmptyFields(t *testing.T) {
	base := Movie{
		Title:  "Dune",
		TMDBID: 438631,
		Cinema: "Filmoteca de Navarra",
		Showtimes: []Showtime{
			{Date: "2025-07-01", Time: "19:00"},
		},
	}
	incoming := Movie{
		Title:         "Dune",
		TMDBID:        438631,
		OriginalTitle: "Dune",
		Director:      "Denis Villeneuve",
		Duration:      "155 min",
		Cast:          "Timothée Chalamet, Rebecca Ferguson",
		Synopsis:      "Paul Atreides viaja a Arrakis.",
		Year:          "2021",
		Showtimes: []Showtime{
			{Date: "2025-07-02", Time: "21:00"},
		},
	}

	got := Merge(base, incoming)

	if got.Director != "Denis Villeneuve" || got.Synopsis == "" || got.Year != "2021" {
		t.Errorf("empty fields not filled from incoming: %+v", got)
	}
	if got.Cinema != "Filmoteca de Navarra" {
		t.Errorf("populated base field lost: %q", got.Cinema)
	}
	if len(got.Showtimes) != 2 {
		t.Errorf("showtimes not unioned: %+v", got.Showtimes)
	}
}

func TestMergeManualPrecedence(t *testing.T) {
	base := Movie{Title: "Dune", Director: "Denis Villeneuve"}
	incoming := Movie{Title: "Dune", Director: "David Lynch"}

	got := Merge(base, incoming)

	if got.Director != "Denis Villeneuve" {
		t.Errorf("base director overwritten: %q", got.Director)
	}
}

func TestMergeIdempotentOnIdenticalInputs(t *testing.T) {
	r := Movie{
		Title:    "Dune",
		TMDBID:   438631,
		Director: "Denis Villeneuve",
		Year:     "2021",
		Showtimes: []Showtime{
			{Date: "2025-07-01", Time: "19:00"},
			{Date: "2025-07-01", Time: "19:00"},
			{Date: "2025-07-02", Time: "21:00"},
		},
	}

	got := Merge(r, r)

	wantShowtimes := []Showtime{
		{Date: "2025-07-01", Time: "19:00"},
		{Date: "2025-07-02", Time: "21:00"},
	}
	if !reflect.DeepEqual(got.Showtimes, wantShowtimes) {
		t.Errorf("showtimes = %+v, want deduplicated %+v", got.Showtimes, wantShowtimes)
	}
	got.Showtimes = nil
	r.Showtimes = nil
	if !reflect.DeepEqual(got, r) {
		t.Errorf("scalar fields changed: %+v vs %+v", got, r)
	}
}

func TestMergePosterPolicy(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		incoming string
		want     string
	}{
		{"tmdb poster overrides site poster", "imagenes_filmoteca/Dune.jpg", "imagenes_filmoteca/tmdb_Dune.jpg", "imagenes_filmoteca/tmdb_Dune.jpg"},
		{"site poster never overrides", "imagenes_filmoteca/tmdb_Dune.jpg", "imagenes_filmoteca/Dune.jpg", "imagenes_filmoteca/tmdb_Dune.jpg"},
		{"site poster fills empty", "", "imagenes_filmoteca/Dune.jpg", "imagenes_filmoteca/Dune.jpg"},
		{"empty incoming keeps base", "imagenes_filmoteca/Dune.jpg", "", "imagenes_filmoteca/Dune.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(Movie{Title: "Dune", Poster: tt.base}, Movie{Title: "Dune", Poster: tt.incoming})
			if got.Poster != tt.want {
				t.Errorf("poster = %q, want %q", got.Poster, tt.want)
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Movie{Title: "Dune", Showtimes: []Showtime{{Date: "2025-07-01", Time: "19:00"}}}
	incoming := Movie{Title: "Dune", Director: "Denis Villeneuve", Showtimes: []Showtime{{Date: "2025-07-02", Time: "21:00"}}}

	Merge(base, incoming)

	if base.Director != "" || len(base.Showtimes) != 1 {
		t.Errorf("base mutated: %+v", base)
	}
	if len(incoming.Showtimes) != 1 {
		t.Errorf("incoming mutated: %+v", incoming)
	}
}

func TestIsTMDBPoster(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"imagenes_filmoteca/tmdb_Dune.jpg", true},
		{"tmdb_Dune.jpg", true},
		{"imagenes_filmoteca/Dune.jpg", false},
		{"imagenes_filmoteca/poster_tmdb.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTMDBPoster(tt.ref); got != tt.want {
			t.Errorf("IsTMDBPoster(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
