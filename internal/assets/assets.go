// Package assets downloads poster and screenshot images from TMDB into
// per-movie folders. One movie is processed at a time: a single image
// endpoint call, then the poster, then up to a configured number of
// screenshots taken from the best-voted backdrops.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/library"
	"github.com/cineguess/cinedex/internal/tmdb"
)

// Status classifies the outcome of processing one movie.
type Status string

const (
	StatusOK    Status = "ok"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// Result describes what happened to one movie folder. The JSON tags shape
// the error report printed at the end of a batch.
type Result struct {
	Folder             string `json:"folder"`
	TMDBID             string `json:"tmdb_id,omitempty"`
	Status             Status `json:"status"`
	Reason             string `json:"reason,omitempty"`
	PosterWritten      bool   `json:"poster_written,omitempty"`
	ScreenshotsWritten int    `json:"screenshots_written,omitempty"`
}

// Fetcher downloads image assets for movie folders. Existing files are left
// alone unless Overwrite is set; stale screenshots beyond a new, smaller set
// are never deleted.
type Fetcher struct {
	Client          *tmdb.Client
	Limit           int
	Overwrite       bool
	PostersOnly     bool
	ScreenshotsOnly bool
}

// Process fetches assets for a single movie folder. The first download
// failure abandons the rest of this movie (already-written files stay) and
// the caller moves on to the next one.
func (f *Fetcher) Process(ctx context.Context, folder library.Folder) Result {
	res := Result{Folder: folder.Name, TMDBID: folder.TMDBID}

	if folder.TMDBID == "" {
		res.Status = StatusSkip
		res.Reason = "no_tmdb_id"
		return res
	}

	imgs, err := f.Client.GetImages(ctx, folder.TMDBID)
	if err != nil {
		res.Status = StatusError
		res.Reason = err.Error()
		return res
	}

	if !f.ScreenshotsOnly && (f.Overwrite || !folder.HasPoster) {
		if path := firstPoster(imgs.Posters); path != "" {
			dest := filepath.Join(folder.Path, library.PosterName)
			if err := f.Client.Download(ctx, path, dest); err != nil {
				res.Status = StatusError
				res.Reason = "poster: " + err.Error()
				return res
			}
			res.PosterWritten = true
		}
	}

	if !f.PostersOnly && (f.Overwrite || !folder.HasScreenshots()) {
		for i, path := range rankBackdrops(imgs.Backdrops, f.Limit) {
			dest := filepath.Join(folder.Path, library.ScreenshotName(i+1))
			if err := f.Client.Download(ctx, path, dest); err != nil {
				res.Status = StatusError
				res.Reason = "screenshot: " + err.Error()
				return res
			}
			res.ScreenshotsWritten++
		}
	}

	res.Status = StatusOK
	return res
}

// firstPoster returns the first poster with a usable file path.
func firstPoster(posters []tmdb.Image) string {
	for _, p := range posters {
		if p.FilePath != "" {
			return p.FilePath
		}
	}
	return ""
}

// rankBackdrops orders backdrops by vote average, best first, and keeps at
// most limit usable file paths. The sort is stable so equally voted images
// keep their API order.
func rankBackdrops(backdrops []tmdb.Image, limit int) []string {
	if limit < 0 {
		limit = 0
	}

	sorted := make([]tmdb.Image, len(backdrops))
	copy(sorted, backdrops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VoteAverage > sorted[j].VoteAverage
	})

	paths := make([]string, 0, limit)
	for _, img := range sorted {
		if len(paths) == limit {
			break
		}
		if img.FilePath == "" {
			continue
		}
		paths = append(paths, img.FilePath)
	}
	return paths
}

// SelectMissing picks the scanned folders that still need assets: a missing
// poster, or zero screenshots, subject to the posters-only/screenshots-only
// restriction. Folders without a TMDB ID are never selected.
func SelectMissing(folders []library.Folder, postersOnly, screenshotsOnly bool) []library.Folder {
	var targets []library.Folder
	for _, f := range folders {
		if f.TMDBID == "" {
			continue
		}
		needsPoster := !f.HasPoster && !screenshotsOnly
		needsScreens := !f.HasScreenshots() && !postersOnly
		if needsPoster || needsScreens {
			targets = append(targets, f)
		}
	}
	return targets
}

// SelectByIDs resolves explicitly requested TMDB IDs to folders, preserving
// request order and dropping duplicates. An ID matching a scanned folder
// uses that folder; any other ID gets a folder named after it, created under
// root if needed.
func SelectByIDs(root string, folders []library.Folder, ids []string) ([]library.Folder, error) {
	byID := make(map[string]library.Folder, len(folders))
	for _, f := range folders {
		if f.TMDBID == "" {
			continue
		}
		if _, ok := byID[f.TMDBID]; !ok {
			byID[f.TMDBID] = f
		}
	}

	seen := make(map[string]bool, len(ids))
	var targets []library.Folder
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if f, ok := byID[id]; ok {
			targets = append(targets, f)
			continue
		}
		if err := os.MkdirAll(filepath.Join(root, id), 0o755); err != nil {
			return nil, fmt.Errorf("creating folder for %s: %w", id, err)
		}
		targets = append(targets, library.ScanFolder(root, id))
	}
	return targets, nil
}

// MissingScreenshotIDs lists catalog IDs recorded with zero screenshots.
func MissingScreenshotIDs(movies []catalog.Movie) []string {
	var ids []string
	for _, m := range movies {
		if m.TMDBID != "" && m.ScreenshotCount == 0 {
			ids = append(ids, m.TMDBID)
		}
	}
	return ids
}
