// Package reconcile merges the freshly scraped showtime batch with the
// existing catalog. Operator-entered movies survive scraper runs, records
// describing the same film collapse into one, past screenings are pruned,
// and the equivalence cache learns every confirmed TMDB match.
package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ferminmg/scrapingcines/internal/catalog"
	"github.com/ferminmg/scrapingcines/internal/equivalence"
	"github.com/ferminmg/scrapingcines/internal/metadata"
	"github.com/ferminmg/scrapingcines/internal/store"
)

// Config holds the files a reconciliation run reads and writes.
type Config struct {
	CatalogPath string // canonical catalog, also the output
	ScrapedPath string // fresh scrape batch
	CachePath   string // equivalence cache
	BackupDir   string // timestamped catalog backups
}

// Resolver matches a title (or a pinned id) against TMDB.
type Resolver interface {
	Resolve(ctx context.Context, title string) (metadata.Result, bool)
	ResolveByID(ctx context.Context, id int) (metadata.Result, bool)
}

// PosterFetcher downloads a TMDB poster and returns its local path.
type PosterFetcher interface {
	FetchTMDB(ctx context.Context, imageURL, movieTitle string) (string, error)
}

// Stats summarizes one reconciliation run.
type Stats struct {
	FromScraper      int // records seeded from the scrape batch
	ManualMerged     int // manual records merged into a scraped record
	ManualStandalone int // manual records kept as their own entry
	Expired          int // records dropped for having no future showtime
	Resolved         int // scraped records matched against TMDB this run
	Total            int // records in the final catalog
}

// Reconciler runs the merge. It is not safe for concurrent runs against the
// same files; callers schedule runs one at a time.
type Reconciler struct {
	cfg      Config
	resolver Resolver      // nil disables TMDB enrichment
	posters  PosterFetcher // nil disables poster downloads
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates a reconciler over the given files.
func New(cfg Config, resolver Resolver, posters PosterFetcher, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		cfg:      cfg,
		resolver: resolver,
		posters:  posters,
		now:      time.Now,
		logger:   logger.With().Str("component", "reconcile").Logger(),
	}
}

// Run executes one reconciliation pass. Per-record problems are logged and
// skipped; only a failure to persist the results aborts the run.
func (r *Reconciler) Run(ctx context.Context) (*Stats, error) {
	log := r.logger.With().Str("run_id", uuid.NewString()[:8]).Logger()
	today := r.now().Format("2006-01-02")
	stats := &Stats{}

	current, err := store.LoadCatalog(r.cfg.CatalogPath)
	if err != nil {
		log.Warn().Err(err).Msg("Catalog unreadable, reconciling against an empty catalog")
	}
	scraped, err := store.LoadCatalog(r.cfg.ScrapedPath)
	if err != nil {
		log.Warn().Err(err).Msg("Scrape batch unreadable, reconciling without fresh data")
	}
	cache := equivalence.Load(r.cfg.CachePath)

	log.Info().
		Str("today", today).
		Int("catalog", len(current)).
		Int("scraped", len(scraped)).
		Int("cache", len(cache)).
		Msg("Starting reconciliation")

	// Seed from the scrape batch. Colliding identities within one batch are
	// last-write-wins: a single scrape run is trusted not to contradict
	// itself.
	merged := make(map[string]catalog.Movie)
	for _, movie := range scraped {
		if !movie.HasFuture(today) {
			stats.Expired++
			log.Debug().Str("title", movie.Title).Msg("Dropping expired scraped record")
			continue
		}
		movie.Showtimes = catalog.FilterFuture(movie.Showtimes, today)
		if movie.TMDBID == 0 {
			r.enrich(ctx, &movie, cache, stats, log)
		}
		merged[movie.IdentityKey()] = movie
	}
	stats.FromScraper = len(merged)

	// Fold in manual records with a TMDB id: merge into the scraped record
	// for the same film, or stand alone.
	for _, movie := range current {
		if movie.TMDBID == 0 {
			continue
		}
		if !movie.HasFuture(today) {
			stats.Expired++
			log.Info().Str("title", movie.Title).Msg("Dropping expired manual record")
			continue
		}
		movie.Showtimes = catalog.FilterFuture(movie.Showtimes, today)
		key := movie.IdentityKey()
		if existing, ok := merged[key]; ok {
			merged[key] = catalog.Merge(movie, existing)
			stats.ManualMerged++
		} else {
			merged[key] = movie
			stats.ManualStandalone++
		}
	}

	// Manual records that never matched TMDB are keyed by title only and
	// are kept unless a record for the same film already exists.
	for _, movie := range current {
		if movie.TMDBID != 0 || !movie.IsManual() {
			continue
		}
		if !movie.HasFuture(today) {
			stats.Expired++
			log.Info().Str("title", movie.Title).Msg("Dropping expired manual record")
			continue
		}
		movie.Showtimes = catalog.FilterFuture(movie.Showtimes, today)
		key := movie.IdentityKey()
		if _, ok := merged[key]; ok {
			log.Debug().Str("title", movie.Title).Msg("Unmatched manual record already covered by identity")
			continue
		}
		merged[key] = movie
		stats.ManualStandalone++
	}

	final := make([]catalog.Movie, 0, len(merged))
	for _, movie := range merged {
		final = append(final, movie)
	}
	sort.Slice(final, func(i, j int) bool {
		ti, tj := strings.ToLower(final[i].Title), strings.ToLower(final[j].Title)
		if ti != tj {
			return ti < tj
		}
		return final[i].IdentityKey() < final[j].IdentityKey()
	})
	stats.Total = len(final)

	// Every confirmed TMDB match feeds the cache so the next run skips the
	// fuzzy search.
	for _, movie := range final {
		if movie.TMDBID == 0 {
			continue
		}
		cache.Upsert(movie.Title, equivalence.Entry{
			TMDBID:        movie.TMDBID,
			OriginalTitle: movie.OriginalTitle,
			Year:          movie.Year,
		})
	}

	if backupPath, err := store.Backup(r.cfg.CatalogPath, r.cfg.BackupDir, r.now()); err != nil {
		log.Warn().Err(err).Msg("Catalog backup failed")
	} else if backupPath != "" {
		log.Info().Str("path", backupPath).Msg("Catalog backed up")
	}

	if err := store.SaveCatalog(r.cfg.CatalogPath, final); err != nil {
		return nil, fmt.Errorf("failed to persist catalog: %w", err)
	}
	if err := equivalence.Save(cache, r.cfg.CachePath); err != nil {
		return nil, fmt.Errorf("failed to persist equivalence cache: %w", err)
	}

	log.Info().
		Int("from_scraper", stats.FromScraper).
		Int("manual_merged", stats.ManualMerged).
		Int("manual_standalone", stats.ManualStandalone).
		Int("expired", stats.Expired).
		Int("resolved", stats.Resolved).
		Int("total", stats.Total).
		Msg("Reconciliation completed")

	return stats, nil
}

// enrich fills a scraped record with TMDB metadata: a cache pin resolves by
// id, anything else goes through the fuzzy title search. Failures leave the
// record as scraped and park a blank suggestion in the cache for the
// operator to pin manually.
func (r *Reconciler) enrich(ctx context.Context, movie *catalog.Movie, cache equivalence.Store, stats *Stats, log zerolog.Logger) {
	if r.resolver == nil {
		return
	}

	var result metadata.Result
	var ok bool
	if entry, found := cache.Lookup(movie.Title); found && entry.TMDBID != 0 {
		log.Debug().Str("title", movie.Title).Int("id", entry.TMDBID).Msg("Resolving via pinned equivalence")
		result, ok = r.resolver.ResolveByID(ctx, entry.TMDBID)
	} else {
		result, ok = r.resolver.Resolve(ctx, movie.Title)
	}
	if !ok {
		log.Warn().Str("title", movie.Title).Msg("Record kept without TMDB metadata")
		cache.Upsert(movie.Title, equivalence.Entry{})
		return
	}

	stats.Resolved++
	movie.TMDBID = result.TMDBID
	if movie.OriginalTitle == "" {
		movie.OriginalTitle = result.OriginalTitle
	}
	if movie.Director == "" {
		movie.Director = result.Director
	}
	if movie.Duration == "" {
		movie.Duration = result.Duration
	}
	if movie.Cast == "" {
		movie.Cast = result.Cast
	}
	if movie.Synopsis == "" {
		movie.Synopsis = result.Synopsis
	}
	if movie.Year == "" {
		movie.Year = result.Year
	}

	if result.PosterURL != "" && r.posters != nil {
		path, err := r.posters.FetchTMDB(ctx, result.PosterURL, movie.Title)
		if err != nil {
			log.Warn().Err(err).Str("title", movie.Title).Msg("Poster download failed")
		} else {
			movie.Poster = path
		}
	}
}
