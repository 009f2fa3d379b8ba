// Package metadata resolves a scraped movie title to TMDB metadata: it
// searches by title, picks the best candidate by fuzzy similarity, and
// assembles the fields the catalog stores (director, cast, runtime label,
// synopsis, year, poster).
package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ferminmg/scrapingcines/internal/title"
	"github.com/ferminmg/scrapingcines/internal/tmdb"
)

// Default policy values. Matches below the similarity floor are rejected so
// a vaguely similar title never hijacks a film's metadata.
const (
	DefaultMinSimilarity = 0.6
	maxCastNames         = 5
	posterSize           = "w500"
)

// Client is the subset of the TMDB client the resolver needs.
type Client interface {
	SearchMovies(ctx context.Context, query, language string) ([]tmdb.MovieResult, error)
	GetMovie(ctx context.Context, id int, language string) (*tmdb.MovieDetails, error)
	GetCredits(ctx context.Context, id int, language string) (*tmdb.Credits, error)
	GetImageURL(path, size string) string
}

// Result is resolved metadata for one film, ready to copy into a catalog
// record.
type Result struct {
	TMDBID        int
	Title         string
	OriginalTitle string
	Director      string
	Duration      string
	Cast          string
	Synopsis      string
	Year          string
	PosterURL     string
}

// Options tune the resolution policy.
type Options struct {
	Language         string  // primary search/details language
	FallbackLanguage string  // retried when the primary yields nothing
	MinSimilarity    float64 // acceptance floor for fuzzy matches
	MinRuntime       int     // minutes; >0 rejects shorter films from fuzzy matches
}

// Resolver matches titles against TMDB.
type Resolver struct {
	client Client
	opts   Options
	logger zerolog.Logger
}

// NewResolver creates a resolver. Zero-valued options fall back to Spanish
// with English retry and the default similarity floor.
func NewResolver(client Client, opts Options, logger zerolog.Logger) *Resolver {
	if opts.Language == "" {
		opts.Language = "es"
	}
	if opts.FallbackLanguage == "" {
		opts.FallbackLanguage = "en"
	}
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = DefaultMinSimilarity
	}
	return &Resolver{
		client: client,
		opts:   opts,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve searches TMDB for the title and returns metadata for the best
// candidate, or ok=false when nothing matches well enough. Request failures
// are treated as empty result sets; Resolve never propagates transport
// errors.
func (r *Resolver) Resolve(ctx context.Context, rawTitle string) (Result, bool) {
	candidates := r.search(ctx, rawTitle)
	if len(candidates) == 0 {
		r.logger.Warn().Str("title", rawTitle).Msg("No TMDB results in any language")
		return Result{}, false
	}

	best, score := bestMatch(rawTitle, candidates)
	if score <= r.opts.MinSimilarity {
		r.logger.Warn().
			Str("title", rawTitle).
			Float64("similarity", score).
			Msg("No TMDB candidate above similarity floor")
		return Result{}, false
	}

	r.logger.Info().
		Str("title", rawTitle).
		Str("match", best.Title).
		Int("id", best.ID).
		Float64("similarity", score).
		Msg("Matched title against TMDB")

	result, ok := r.fetch(ctx, best.ID)
	if !ok {
		return Result{}, false
	}

	if r.opts.MinRuntime > 0 {
		if runtime := parseRuntime(result.Duration); runtime > 0 && runtime < r.opts.MinRuntime {
			r.logger.Warn().
				Str("title", rawTitle).
				Str("match", best.Title).
				Int("runtime", runtime).
				Msg("Rejecting short film sharing the feature's title")
			return Result{}, false
		}
	}

	return result, true
}

// ResolveByID fetches metadata for a known TMDB id, typically one an
// operator pinned in the equivalence cache. The similarity and runtime
// policies do not apply: a pin is trusted as-is.
func (r *Resolver) ResolveByID(ctx context.Context, id int) (Result, bool) {
	return r.fetch(ctx, id)
}

// search queries the primary language and retries in the fallback language
// when there are no results. Errors count as no results.
func (r *Resolver) search(ctx context.Context, rawTitle string) []tmdb.MovieResult {
	results, err := r.client.SearchMovies(ctx, rawTitle, r.opts.Language)
	if err != nil {
		r.logger.Warn().Err(err).Str("title", rawTitle).Str("language", r.opts.Language).Msg("TMDB search failed")
	}
	if len(results) > 0 {
		return results
	}

	results, err = r.client.SearchMovies(ctx, rawTitle, r.opts.FallbackLanguage)
	if err != nil {
		r.logger.Warn().Err(err).Str("title", rawTitle).Str("language", r.opts.FallbackLanguage).Msg("TMDB fallback search failed")
	}
	return results
}

// bestMatch returns the candidate with the highest title similarity.
// Candidates are walked newest first, so equal scores resolve to the most
// recent release: re-releases of a classic usually mean the new restoration
// is the one on the bill.
func bestMatch(rawTitle string, candidates []tmdb.MovieResult) (tmdb.MovieResult, float64) {
	sorted := make([]tmdb.MovieResult, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return releaseDate(sorted[i]) > releaseDate(sorted[j])
	})

	var best tmdb.MovieResult
	bestScore := -1.0
	for _, candidate := range sorted {
		score := title.Similarity(rawTitle, candidate.Title)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best, bestScore
}

func releaseDate(m tmdb.MovieResult) string {
	if m.ReleaseDate == "" {
		return "1900-01-01"
	}
	return m.ReleaseDate
}

// fetch retrieves details and credits for the id, retrying each in the
// fallback language, and assembles the catalog-ready result. Missing
// credits degrade to empty director/cast fields.
func (r *Resolver) fetch(ctx context.Context, id int) (Result, bool) {
	details, err := r.client.GetMovie(ctx, id, r.opts.Language)
	if err != nil {
		r.logger.Warn().Err(err).Int("id", id).Msg("TMDB details failed, retrying in fallback language")
		details, err = r.client.GetMovie(ctx, id, r.opts.FallbackLanguage)
	}
	if err != nil {
		r.logger.Warn().Err(err).Int("id", id).Msg("TMDB details unavailable")
		return Result{}, false
	}

	credits, err := r.client.GetCredits(ctx, id, r.opts.Language)
	if err != nil {
		credits, err = r.client.GetCredits(ctx, id, r.opts.FallbackLanguage)
	}
	if err != nil {
		r.logger.Warn().Err(err).Int("id", id).Msg("TMDB credits unavailable")
		credits = &tmdb.Credits{}
	}

	result := Result{
		TMDBID:        id,
		Title:         details.Title,
		OriginalTitle: details.OriginalTitle,
		Director:      directorNames(credits.Crew),
		Cast:          castNames(credits.Cast),
		Synopsis:      details.Overview,
	}
	if details.Runtime > 0 {
		result.Duration = fmt.Sprintf("%d min", details.Runtime)
	}
	if len(details.ReleaseDate) >= 4 {
		result.Year = details.ReleaseDate[:4]
	}
	if details.PosterPath != nil {
		result.PosterURL = r.client.GetImageURL(*details.PosterPath, posterSize)
	}
	return result, true
}

func directorNames(crew []tmdb.CrewMember) string {
	var names []string
	for _, member := range crew {
		if member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return strings.Join(names, ", ")
}

func castNames(cast []tmdb.CastMember) string {
	names := make([]string, 0, maxCastNames)
	for _, member := range cast {
		if len(names) == maxCastNames {
			break
		}
		names = append(names, member.Name)
	}
	return strings.Join(names, ", ")
}

// parseRuntime pulls the minute count back out of a "155 min" label.
func parseRuntime(duration string) int {
	var minutes int
	if _, err := fmt.Sscanf(duration, "%d min", &minutes); err != nil {
		return 0
	}
	return minutes
}
