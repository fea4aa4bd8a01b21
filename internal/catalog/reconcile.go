package catalog

import (
	"context"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/cineguess/cinedex/internal/library"
)

// FetchFunc fetches the catalog record for one TMDB ID.
type FetchFunc func(ctx context.Context, id string) (Movie, error)

// Reconciler merges a folder scan into an existing catalog. Folders with IDs
// not yet in the catalog are fetched and appended; every known record has its
// folder-presence fields recomputed. Records are never deleted, so a removed
// folder leaves its entry behind with the presence flags cleared.
type Reconciler struct {
	Fetch  FetchFunc
	Logger *log.Logger

	// CleanLegacy removes the obsolete metadata.txt from folders that are
	// being fetched for the first time.
	CleanLegacy bool
}

// Result summarizes one reconciliation pass. Movies is the full merged
// catalog in canonical order, ready to be saved.
type Result struct {
	Movies []Movie

	// Added counts new records created from successful fetches; Refreshed
	// counts existing records whose poster or screenshots flag flipped.
	Added     int
	Refreshed int

	// NewIDs are the folder IDs absent from the catalog before this pass,
	// including ones whose fetch then failed (FailedIDs). Unresolved lists
	// folder names for which no TMDB ID could be derived; those folders are
	// never fetched.
	NewIDs     []string
	FailedIDs  []string
	Unresolved []string
}

// Reconcile runs one pass over the scanned folders. A failed fetch skips
// that movie and moves on; the ID stays out of the catalog and is picked up
// again on the next run. Reconciling the same state twice is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, existing []Movie, folders []library.Folder) Result {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	byID := make(map[string]*Movie, len(existing))
	for i := range existing {
		m := existing[i]
		if m.TMDBID != "" {
			byID[m.TMDBID] = &m
		}
	}

	var res Result
	folderByID := make(map[string]library.Folder, len(folders))
	for _, folder := range folders {
		if folder.TMDBID == "" {
			res.Unresolved = append(res.Unresolved, folder.Name)
			continue
		}
		if _, dup := folderByID[folder.TMDBID]; dup {
			logger.Debug("duplicate folder for ID", "tmdb_id", folder.TMDBID, "folder", folder.Name)
			continue
		}
		folderByID[folder.TMDBID] = folder
		if _, known := byID[folder.TMDBID]; !known {
			res.NewIDs = append(res.NewIDs, folder.TMDBID)
		}
	}

	for _, id := range res.NewIDs {
		folder := folderByID[id]

		if r.CleanLegacy {
			removed, err := library.RemoveLegacyMetadata(folder.Path)
			switch {
			case err != nil:
				logger.Warn("could not remove legacy metadata", "folder", folder.Name, "err", err)
			case removed:
				logger.Info("removed legacy metadata", "folder", folder.Name)
			}
		}

		logger.Info("fetching", "tmdb_id", id, "folder", folder.Name)
		movie, err := r.Fetch(ctx, id)
		if err != nil {
			logger.Warn("skipping folder, fetch failed", "tmdb_id", id, "err", err)
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}

		movie.Poster = folder.HasPoster
		movie.Screenshots = folder.HasScreenshots()
		movie.ScreenshotCount = folder.ScreenshotCount
		byID[id] = &movie
		res.Added++
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Recompute presence for every known record, whether or not its folder
	// still exists. Only poster/screenshots flips count as a refresh; a bare
	// screenshot-count change does not.
	for _, id := range ids {
		movie := byID[id]
		folder := folderByID[id]

		poster := folder.HasPoster
		screens := folder.HasScreenshots()
		if movie.Poster != poster || movie.Screenshots != screens {
			res.Refreshed++
		}
		movie.Poster = poster
		movie.Screenshots = screens
		movie.ScreenshotCount = folder.ScreenshotCount
	}

	res.Movies = make([]Movie, 0, len(byID))
	for _, id := range ids {
		res.Movies = append(res.Movies, *byID[id])
	}
	Sort(res.Movies)
	return res
}
