package catalog

import (
	"path/filepath"
	"strings"
)

// tmdbPosterPrefix marks poster files downloaded from TMDB rather than
// screenshot from a cinema site. TMDB posters are the better artwork and
// replace site posters during merges.
const tmdbPosterPrefix = "tmdb_"

// IsTMDBPoster reports whether a poster reference points at a
// TMDB-downloaded image, recognized by the file naming convention the
// poster fetcher uses.
func IsTMDBPoster(ref string) bool {
	if ref == "" {
		return false
	}
	return strings.HasPrefix(filepath.Base(ref), tmdbPosterPrefix)
}

// Merge combines two records known to describe the same film. base is the
// higher-precedence side (typically the operator's record), incoming the
// freshly scraped one. Populated base fields are never overwritten; empty
// ones are filled from incoming. Showtimes are unioned with base winning
// shared slots. The only exception is the poster: a TMDB-sourced incoming
// poster replaces whatever base had. Inputs are left untouched.
func Merge(base, incoming Movie) Movie {
	merged := base
	merged.Showtimes = MergeShowtimes(base.Showtimes, incoming.Showtimes)

	if merged.TMDBID == 0 {
		merged.TMDBID = incoming.TMDBID
	}
	if merged.OriginalTitle == "" {
		merged.OriginalTitle = incoming.OriginalTitle
	}
	if merged.Director == "" {
		merged.Director = incoming.Director
	}
	if merged.Duration == "" {
		merged.Duration = incoming.Duration
	}
	if merged.Cast == "" {
		merged.Cast = incoming.Cast
	}
	if merged.Synopsis == "" {
		merged.Synopsis = incoming.Synopsis
	}
	if merged.Year == "" {
		merged.Year = incoming.Year
	}
	if merged.Cinema == "" {
		merged.Cinema = incoming.Cinema
	}

	if incoming.Poster != "" && IsTMDBPoster(incoming.Poster) {
		merged.Poster = incoming.Poster
	} else if merged.Poster == "" {
		merged.Poster = incoming.Poster
	}

	return merged
}
