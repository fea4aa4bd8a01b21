package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/fetcher"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the movie catalog from scratch",
	Long: `Scans every movie folder under the root, fetches metadata and credits
from TMDB for each resolved ID, and writes a fresh catalog. Whatever the
catalog file contained before is discarded. Obsolete metadata.txt files are
removed from processed folders along the way.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBuild(cmd)
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command) {
	requireAPIKey()

	folders := scanLibrary()
	logger.Info("building catalog", "folders", len(folders), "root", cfg.Root)

	f := fetcher.New(cfg.NewClient())
	rec := &catalog.Reconciler{Fetch: f.Fetch, Logger: logger, CleanLegacy: true}
	res := rec.Reconcile(cmd.Context(), nil, folders)

	printReconcileSummary(len(folders), res)

	if err := catalog.Save(cfg.Catalog, res.Movies); err != nil {
		logger.Error(fmt.Sprintf("Failed to write catalog: %v", err))
		os.Exit(1)
	}
	fmt.Printf("\n%s %s\n", StyleHeader.Render("Wrote"), StylePath.Render(cfg.Catalog))
}

func printReconcileSummary(scanned int, res catalog.Result) {
	fmt.Printf("Scanned %s folders under %s\n",
		StyleCommand.Render(strconv.Itoa(scanned)), StylePath.Render(cfg.Root))
	fmt.Printf("Added %s new movies\n", StyleCommand.Render(strconv.Itoa(res.Added)))
	fmt.Printf("Updated poster/screenshot flags for %s existing entries\n",
		StyleCommand.Render(strconv.Itoa(res.Refreshed)))
	fmt.Printf("Total movies: %s\n", StyleCommand.Render(strconv.Itoa(len(res.Movies))))

	if len(res.FailedIDs) > 0 {
		fmt.Printf("\n%s: %d\n", StyleHeader.Render("Failed fetches (will retry next run)"), len(res.FailedIDs))
		for _, id := range res.FailedIDs {
			fmt.Printf(" %s %s\n", StyleDim.Render("-"), StyleID.Render(id))
		}
	}
	if len(res.Unresolved) > 0 {
		fmt.Printf("\n%s: %d\n", StyleHeader.Render("Folders without a TMDB ID"), len(res.Unresolved))
		for _, name := range res.Unresolved {
			fmt.Printf(" %s %s\n", StyleDim.Render("-"), StylePath.Render(name))
		}
	}
}
