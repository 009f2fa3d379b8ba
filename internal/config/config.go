package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PathsConfig holds the file locations a reconciliation run works on.
type PathsConfig struct {
	Catalog   string `mapstructure:"catalog"`    // canonical catalog
	Scraped   string `mapstructure:"scraped"`    // fresh scrape batch
	Cache     string `mapstructure:"cache"`      // equivalence cache
	BackupDir string `mapstructure:"backup_dir"` // timestamped catalog backups
	ImagesDir string `mapstructure:"images_dir"` // downloaded posters
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	BaseURL          string  `mapstructure:"base_url"`
	ImageBaseURL     string  `mapstructure:"image_base_url"`
	Timeout          int     `mapstructure:"timeout"` // seconds per request
	Language         string  `mapstructure:"language"`
	FallbackLanguage string  `mapstructure:"fallback_language"`
	MinSimilarity    float64 `mapstructure:"min_similarity"`
	MinRuntime       int     `mapstructure:"min_runtime"` // minutes; 0 disables the short-film filter
}

// SchedulerConfig holds the daily run schedule.
type SchedulerConfig struct {
	Cron string `mapstructure:"cron"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults.
// TMDB_API_KEY is honored without the prefix because the .env files deployed
// alongside the old scraper scripts use that name.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.cartelera")
	}

	v.SetEnvPrefix("CARTELERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults + env vars
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.TMDB.APIKey == "" {
		cfg.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	}

	return cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Paths defaults match the file names the admin tools already use
	v.SetDefault("paths.catalog", "peliculas_filmoteca.json")
	v.SetDefault("paths.scraped", "peliculas_filmoteca_scraping.json")
	v.SetDefault("paths.cache", "equivalencias_peliculas.json")
	v.SetDefault("paths.backup_dir", "backups")
	v.SetDefault("paths.images_dir", "imagenes_filmoteca")

	// TMDB defaults. The api_key default registers the key with viper so
	// AutomaticEnv picks up CARTELERA_TMDB_API_KEY.
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.timeout", 15)
	v.SetDefault("tmdb.language", "es")
	v.SetDefault("tmdb.fallback_language", "en")
	v.SetDefault("tmdb.min_similarity", 0.6)
	v.SetDefault("tmdb.min_runtime", 0)

	// Scheduler defaults: daily at 06:30, matching the old cron entry
	v.SetDefault("scheduler.cron", "30 6 * * *")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)
}
