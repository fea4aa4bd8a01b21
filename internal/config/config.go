// Package config resolves runtime settings from the environment. Every
// value has a working default except the TMDB API key, which must be
// provided before anything talks to the API.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cast"

	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/tmdb"
)

const (
	// DefaultRoot is the movie folder root used when none is configured.
	DefaultRoot = "movie_images"
	// DefaultDelay is the pause between TMDB calls.
	DefaultDelay = 300 * time.Millisecond
)

// Config carries the settings shared by all commands.
type Config struct {
	// Root is the directory holding one folder per movie.
	Root string
	// APIKey authenticates against the TMDB v3 API.
	APIKey string
	// ImageBase is the CDN base URL image file paths are resolved against.
	ImageBase string
	// Catalog is the path of the movies JSON file.
	Catalog string
	// Delay spaces out TMDB API calls.
	Delay time.Duration
}

// FromEnv builds a Config from the environment. MOVIE_DATA_ROOT names the
// library root, with MOVIE_IMAGES_ROOT accepted as an older spelling;
// TMDB_API_KEY, TMDB_IMAGE_BASE, CINEDEX_CATALOG and TMDB_DELAY_SECONDS
// cover the rest. Unset or unparseable values fall back to defaults.
func FromEnv() Config {
	cfg := Config{
		Root:      firstEnv("MOVIE_DATA_ROOT", "MOVIE_IMAGES_ROOT"),
		APIKey:    os.Getenv("TMDB_API_KEY"),
		ImageBase: os.Getenv("TMDB_IMAGE_BASE"),
		Catalog:   os.Getenv("CINEDEX_CATALOG"),
		Delay:     DefaultDelay,
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.ImageBase == "" {
		cfg.ImageBase = tmdb.DefaultImageBase
	}
	if cfg.Catalog == "" {
		cfg.Catalog = catalog.DefaultName
	}
	if s := os.Getenv("TMDB_DELAY_SECONDS"); s != "" {
		if secs, err := cast.ToFloat64E(s); err == nil && secs >= 0 {
			cfg.Delay = time.Duration(secs * float64(time.Second))
		}
	}
	return cfg
}

// RequireAPIKey fails when no TMDB API key is configured. Commands that hit
// the API call this before doing any work.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	return nil
}

// NewClient builds a TMDB client from the configured key, image base and
// call delay.
func (c Config) NewClient() *tmdb.Client {
	return tmdb.New(c.APIKey,
		tmdb.WithImageBase(c.ImageBase),
		tmdb.WithDelay(c.Delay))
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
