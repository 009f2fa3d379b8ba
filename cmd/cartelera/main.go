// Command cartelera merges the latest scraped cinema listings with the
// manually curated catalog. It runs once by default; with -schedule it stays
// up and reconciles on the configured cron expression, the way the old
// nightly cron job did.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/ferminmg/scrapingcines/internal/config"
	"github.com/ferminmg/scrapingcines/internal/logger"
	"github.com/ferminmg/scrapingcines/internal/metadata"
	"github.com/ferminmg/scrapingcines/internal/poster"
	"github.com/ferminmg/scrapingcines/internal/reconcile"
	"github.com/ferminmg/scrapingcines/internal/tmdb"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	schedule := flag.Bool("schedule", false, "Keep running and reconcile on the configured cron schedule")
	noResolve := flag.Bool("no-resolve", false, "Skip TMDB lookups, merge files only")
	flag.Parse()

	// .env carries TMDB_API_KEY in existing deployments; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	var resolver reconcile.Resolver
	var posters reconcile.PosterFetcher
	if !*noResolve {
		if cfg.TMDB.APIKey == "" {
			log.Warn().Msg("TMDB API key not configured, records will not be enriched")
		} else {
			client := tmdb.NewClient(cfg.TMDB, log.Logger)
			resolver = metadata.NewResolver(client, metadata.Options{
				Language:         cfg.TMDB.Language,
				FallbackLanguage: cfg.TMDB.FallbackLanguage,
				MinSimilarity:    cfg.TMDB.MinSimilarity,
				MinRuntime:       cfg.TMDB.MinRuntime,
			}, log.Logger)
			posters = poster.NewFetcher(cfg.Paths.ImagesDir, log.Logger)
		}
	}

	reconciler := reconcile.New(reconcile.Config{
		CatalogPath: cfg.Paths.Catalog,
		ScrapedPath: cfg.Paths.Scraped,
		CachePath:   cfg.Paths.Cache,
		BackupDir:   cfg.Paths.BackupDir,
	}, resolver, posters, log.Logger)

	if *schedule {
		runScheduled(cfg, reconciler, log)
		return
	}

	stats, err := reconciler.Run(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Reconciliation failed")
		os.Exit(1)
	}
	fmt.Println(renderReport(stats))
}

// runScheduled blocks, reconciling on the configured cron expression until
// interrupted.
func runScheduled(cfg *config.Config, reconciler *reconcile.Reconciler, log *logger.Logger) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create scheduler")
		os.Exit(1)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cfg.Scheduler.Cron, false),
		gocron.NewTask(func() {
			stats, err := reconciler.Run(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Scheduled reconciliation failed")
				return
			}
			fmt.Println(renderReport(stats))
		}),
		gocron.WithName("reconcile"),
	)
	if err != nil {
		log.Error().Err(err).Str("cron", cfg.Scheduler.Cron).Msg("Failed to schedule reconciliation")
		os.Exit(1)
	}

	scheduler.Start()
	log.Info().Str("cron", cfg.Scheduler.Cron).Msg("Scheduler started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down scheduler")
	if err := scheduler.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("Scheduler shutdown failed")
	}
}

