package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cineguess/cinedex/internal/library"
	"github.com/cineguess/cinedex/internal/report"
)

var (
	flagReportLimit int
	flagShareRoot   string
	flagImagesRoot  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report asset presence across movie folders",
	Long: `Counts how many movie folders have a metadata file, a poster and
screenshots, and lists a sample of the folders missing each.

With --share-root, metadata files are scanned from per-movie folders under
that share while image assets are looked up under the images root, keyed
by TMDB ID. This covers layouts where the movie files and the fetched
images live on different volumes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport()
	},
}

func init() {
	reportCmd.Flags().IntVar(&flagReportLimit, "limit", 25, "how many missing items to list per category")
	reportCmd.Flags().StringVar(&flagShareRoot, "share-root", "", "scan metadata from this root instead of the movie root")
	reportCmd.Flags().StringVar(&flagImagesRoot, "images-root", "", "images root keyed by TMDB ID (used with --share-root)")
	RootCmd.AddCommand(reportCmd)
}

func runReport() {
	var summary report.Summary

	if flagShareRoot != "" {
		imagesRoot := flagImagesRoot
		if imagesRoot == "" {
			imagesRoot = cfg.Root
		}
		shares, err := library.Scan(flagShareRoot)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to scan share root: %v", err))
			os.Exit(1)
		}
		summary = report.BuildSplit(shares, imagesRoot)
		fmt.Printf("Share root: %s\n", StylePath.Render(flagShareRoot))
		fmt.Printf("Images root: %s\n", StylePath.Render(imagesRoot))
	} else {
		summary = report.Build(scanLibrary())
		fmt.Printf("Movie data root: %s\n", StylePath.Render(cfg.Root))
	}

	fmt.Printf("Total movie folders: %s\n", StyleCommand.Render(strconv.Itoa(summary.Total)))
	fmt.Printf("Metadata present: %d / %d\n", summary.Metadata.Present, summary.Total)
	fmt.Printf("Poster present: %d / %d\n", summary.Poster.Present, summary.Total)
	fmt.Printf("Screenshots present: %d / %d\n", summary.Screenshots.Present, summary.Total)

	printMissing("Missing metadata", summary.Metadata)
	printMissing("Missing poster", summary.Poster)
	printMissing("Missing screenshots", summary.Screenshots)
}

func printMissing(title string, c report.Category) {
	if len(c.Missing) == 0 {
		fmt.Printf("\n%s: none 🎉\n", StyleHeader.Render(title))
		return
	}

	fmt.Printf("\n%s (showing up to %d): %d missing\n",
		StyleHeader.Render(title), flagReportLimit, len(c.Missing))
	for _, row := range c.Sample(flagReportLimit) {
		id := row.TMDBID
		if id == "" {
			id = "unknown"
		}
		fmt.Printf(" %s %s (id: %s)\n",
			StyleDim.Render("-"), StylePath.Render(row.Folder), StyleID.Render(id))
	}
}
