// Package report aggregates asset presence across scanned movie folders:
// how many have a metadata file, a poster, and screenshots, and which ones
// are missing each.
package report

import "github.com/cineguess/cinedex/internal/library"

// Row identifies one movie folder in a missing-asset list.
type Row struct {
	Folder string
	TMDBID string
}

// Category tallies one asset kind. Missing preserves scan order.
type Category struct {
	Present int
	Missing []Row
}

// Sample returns at most limit missing rows.
func (c Category) Sample(limit int) []Row {
	if limit < 0 {
		limit = 0
	}
	if limit > len(c.Missing) {
		limit = len(c.Missing)
	}
	return c.Missing[:limit]
}

// Summary is the full asset-presence report for a library root.
type Summary struct {
	Total       int
	Metadata    Category
	Poster      Category
	Screenshots Category
}

// Build aggregates the scanned folders into a Summary.
func Build(folders []library.Folder) Summary {
	s := Summary{Total: len(folders)}
	for _, f := range folders {
		row := Row{Folder: f.Name, TMDBID: f.TMDBID}
		tally(&s.Metadata, f.HasMetadata(), row)
		tally(&s.Poster, f.HasPoster, row)
		tally(&s.Screenshots, f.HasScreenshots(), row)
	}
	return s
}

// BuildSplit aggregates a split layout: metadata files live in per-movie
// folders under a share root, while the image assets live in a separate root
// keyed by TMDB ID. Only metadata-derived IDs are trusted here; a share
// folder without a metadata file counts as unresolved rather than using its
// name, since share folders carry movie titles, not IDs.
func BuildSplit(shareFolders []library.Folder, imagesRoot string) Summary {
	rows := make([]library.Folder, 0, len(shareFolders))
	for _, f := range shareFolders {
		row := library.Folder{Name: f.Name, MetadataFile: f.MetadataFile}
		if f.HasMetadata() {
			row.TMDBID = f.TMDBID
		}
		if row.TMDBID != "" {
			img := library.ScanFolder(imagesRoot, row.TMDBID)
			row.HasPoster = img.HasPoster
			row.ScreenshotCount = img.ScreenshotCount
		}
		rows = append(rows, row)
	}
	return Build(rows)
}

func tally(c *Category, present bool, row Row) {
	if present {
		c.Present++
		return
	}
	c.Missing = append(c.Missing, row)
}
