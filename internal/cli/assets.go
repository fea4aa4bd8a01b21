package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cineguess/cinedex/internal/assets"
	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/library"
	"github.com/cineguess/cinedex/internal/tmdb"
)

var (
	flagAssetsMode  string
	flagAssetsIDs   []string
	flagAssetsLimit int
	flagAssetsDelay float64
	flagOverwrite   bool
	flagPostersOnly bool
	flagScreensOnly bool
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Download posters and screenshots from TMDB",
	Long: `Downloads image assets into the per-movie folders. The poster is the
first one TMDB lists; screenshots are the best-voted backdrops, written as
screenshot_1.jpg onwards. Existing files are kept unless --overwrite is
given, and a download failure abandons that movie without stopping the
batch.

Target selection:
  --mode missing   folders lacking a poster or screenshots (default)
  --mode ids       the TMDB IDs given with --ids; unknown IDs get a new
                   folder named after the ID
  --mode catalog   catalog entries recorded with zero screenshots`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runAssets(cmd)
	},
}

func init() {
	assetsCmd.Flags().StringVar(&flagAssetsMode, "mode", "missing", "target selection: missing, ids, or catalog")
	assetsCmd.Flags().StringSliceVar(&flagAssetsIDs, "ids", nil, "TMDB IDs to process with --mode ids")
	assetsCmd.Flags().IntVar(&flagAssetsLimit, "limit", 6, "screenshots to fetch per movie")
	assetsCmd.Flags().Float64Var(&flagAssetsDelay, "delay", 0, "seconds between TMDB calls (defaults to TMDB_DELAY_SECONDS)")
	assetsCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "replace existing posters and screenshots")
	assetsCmd.Flags().BoolVar(&flagPostersOnly, "posters-only", false, "only fetch posters")
	assetsCmd.Flags().BoolVar(&flagScreensOnly, "screenshots-only", false, "only fetch screenshots")
	RootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command) {
	requireAPIKey()
	if flagPostersOnly && flagScreensOnly {
		logger.Error("--posters-only and --screenshots-only are mutually exclusive")
		os.Exit(1)
	}

	delay := cfg.Delay
	if cmd.Flags().Changed("delay") {
		delay = time.Duration(flagAssetsDelay * float64(time.Second))
	}
	client := tmdb.New(cfg.APIKey,
		tmdb.WithImageBase(cfg.ImageBase),
		tmdb.WithDelay(delay))

	targets := assetTargets()

	fmt.Printf("Movie data root: %s\n", StylePath.Render(cfg.Root))
	fmt.Printf("Targets to process: %s\n", StyleCommand.Render(strconv.Itoa(len(targets))))
	if len(targets) == 0 {
		return
	}

	f := &assets.Fetcher{
		Client:          client,
		Limit:           flagAssetsLimit,
		Overwrite:       flagOverwrite,
		PostersOnly:     flagPostersOnly,
		ScreenshotsOnly: flagScreensOnly,
	}

	success := 0
	var failures []assets.Result
	for i, target := range targets {
		res := f.Process(cmd.Context(), target)

		prefix := StyleDim.Render(fmt.Sprintf("[%d/%d]", i+1, len(targets)))
		id := target.TMDBID
		if id == "" {
			id = "?"
		}
		if res.Status == assets.StatusOK {
			success++
			fmt.Printf("%s %s (%s): ok%s\n", prefix,
				StylePath.Render(target.Name), StyleID.Render(id), assetNotes(res))
		} else {
			failures = append(failures, res)
			fmt.Printf("%s %s (%s): %s\n", prefix,
				StylePath.Render(target.Name), StyleID.Render(id), res.Reason)
		}
	}

	fmt.Printf("\nCompleted. Success: %s / %d. Errors: %d\n",
		StyleCommand.Render(strconv.Itoa(success)), len(targets), len(failures))
	if len(failures) > 0 {
		out, err := json.MarshalIndent(failures, "", "  ")
		if err == nil {
			fmt.Println(string(out))
		}
	}
}

// assetTargets resolves the configured mode to the folders to process.
func assetTargets() []library.Folder {
	folders := scanLibrary()

	switch flagAssetsMode {
	case "missing":
		return assets.SelectMissing(folders, flagPostersOnly, flagScreensOnly)

	case "ids":
		if len(flagAssetsIDs) == 0 {
			logger.Error("--mode ids requires --ids")
			os.Exit(1)
		}
		targets, err := assets.SelectByIDs(cfg.Root, folders, flagAssetsIDs)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to prepare folders: %v", err))
			os.Exit(1)
		}
		return targets

	case "catalog":
		movies, err := catalog.Load(cfg.Catalog)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to load catalog: %v", err))
			os.Exit(1)
		}
		if movies == nil {
			logger.Error(fmt.Sprintf("Catalog not found: %s", cfg.Catalog))
			os.Exit(1)
		}
		targets, err := assets.SelectByIDs(cfg.Root, folders, assets.MissingScreenshotIDs(movies))
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to prepare folders: %v", err))
			os.Exit(1)
		}
		return targets

	default:
		logger.Error(fmt.Sprintf("Unknown mode: %q (expected missing, ids, or catalog)", flagAssetsMode))
		os.Exit(1)
		return nil
	}
}

func assetNotes(res assets.Result) string {
	var parts []string
	if res.PosterWritten {
		parts = append(parts, "poster")
	}
	if res.ScreenshotsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d screenshots", res.ScreenshotsWritten))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, ", ")
}
