package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cineguess/cinedex/internal/assets"
	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/fetcher"
)

var (
	flagUpdateReport       bool
	flagListNew            bool
	flagListMissingScreens bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the catalog with new folders and refreshed asset flags",
	Long: `Loads the existing catalog, scans the movie root, fetches metadata for
folders whose TMDB ID is not yet in the catalog, and recomputes the
poster/screenshot fields of every known entry. Records are never removed:
a folder deleted from disk keeps its catalog entry with the presence flags
cleared.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd)
	},
}

func init() {
	updateCmd.Flags().BoolVar(&flagUpdateReport, "report", false, "report only; do not write the catalog")
	updateCmd.Flags().BoolVar(&flagListNew, "list-new", false, "print TMDB IDs that are new to the catalog")
	updateCmd.Flags().BoolVar(&flagListMissingScreens, "list-missing-screens", false, "print TMDB IDs with no screenshots on disk")
	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command) {
	requireAPIKey()

	existing, err := catalog.Load(cfg.Catalog)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load catalog: %v", err))
		os.Exit(1)
	}

	folders := scanLibrary()
	logger.Info("reconciling", "folders", len(folders), "existing", len(existing))

	f := fetcher.New(cfg.NewClient())
	rec := &catalog.Reconciler{Fetch: f.Fetch, Logger: logger, CleanLegacy: true}
	res := rec.Reconcile(cmd.Context(), existing, folders)

	printReconcileSummary(len(folders), res)

	if flagListNew && len(res.NewIDs) > 0 {
		fmt.Printf("\n%s\n", StyleHeader.Render("New TMDB IDs:"))
		for _, id := range res.NewIDs {
			fmt.Printf(" %s %s\n", StyleDim.Render("-"), StyleID.Render(id))
		}
	}
	if flagListMissingScreens {
		if missing := assets.MissingScreenshotIDs(res.Movies); len(missing) > 0 {
			fmt.Printf("\n%s\n", StyleHeader.Render("Movies missing screenshots:"))
			for _, id := range missing {
				fmt.Printf(" %s %s\n", StyleDim.Render("-"), StyleID.Render(id))
			}
		}
	}

	if flagUpdateReport {
		fmt.Printf("\n%s\n", styleFlag.Render("[REPORT-ONLY] catalog not written"))
		return
	}

	if err := catalog.Save(cfg.Catalog, res.Movies); err != nil {
		logger.Error(fmt.Sprintf("Failed to write catalog: %v", err))
		os.Exit(1)
	}
	fmt.Printf("\n%s %s\n", StyleHeader.Render("Wrote"), StylePath.Render(cfg.Catalog))
}
