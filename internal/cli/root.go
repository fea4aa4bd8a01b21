// Package cli wires the cinedex commands: building and updating the movie
// catalog, fetching image assets, and reporting on asset presence.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cineguess/cinedex/internal/config"
	"github.com/cineguess/cinedex/internal/library"
)

var (
	logger *log.Logger
	cfg    config.Config

	flagRoot    string
	flagCatalog string
	flagVerbose bool
)

// RootCmd is the top-level cinedex command.
var RootCmd = &cobra.Command{
	Use:   "cinedex",
	Short: "Maintain a movie catalog and its image assets from TMDB",
	Long: `cinedex keeps a local movie library in sync with TMDB.

The library is a root directory with one folder per movie, holding a
poster.jpg, numbered screenshot_<n>.jpg files and an optional
*_metadata.txt file. cinedex scans those folders, fetches metadata and
images from TMDB, maintains a movies.json catalog, and reports which
assets are still missing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "movie folder root (defaults to MOVIE_DATA_ROOT)")
	RootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog file (defaults to CINEDEX_CATALOG)")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// setup prepares the logger and resolves configuration before any command
// runs. A .env file in the working directory is honored when present.
func setup() {
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	configureStyles()

	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	cfg = config.FromEnv()
	if flagRoot != "" {
		cfg.Root = flagRoot
	}
	if flagCatalog != "" {
		cfg.Catalog = flagCatalog
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scanLibrary scans the configured movie root or exits. A missing root is a
// setup problem, not something to work around.
func scanLibrary() []library.Folder {
	folders, err := library.Scan(cfg.Root)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to scan movie root: %v", err))
		os.Exit(1)
	}
	return folders
}

func requireAPIKey() {
	if err := cfg.RequireAPIKey(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
