// Package catalog defines the persistent movie catalog: one JSON array of
// records keyed by TMDB ID, stored human-readable on disk.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// DefaultName is the catalog filename used when none is configured.
const DefaultName = "movies.json"

// Movie is one catalog record. Metadata fields are set once when the record
// is created from a TMDB fetch; Poster, Screenshots and ScreenshotCount are
// filesystem observations recomputed on every reconciliation pass.
// ChallengeID is an opaque field owned by downstream consumers and is never
// touched after creation.
type Movie struct {
	Cast                []string `json:"cast"`
	Decade              string   `json:"decade"`
	Director            string   `json:"director"`
	Genres              []string `json:"genres"`
	OriginalLanguage    string   `json:"original_language"`
	Plot                string   `json:"plot"`
	Popularity          float64  `json:"popularity"`
	ProductionCompanies []string `json:"production_companies"`
	ReleaseDate         string   `json:"release_date"`
	Revenue             string   `json:"revenue"`
	Tagline             string   `json:"tagline"`
	Title               string   `json:"title"`
	TMDBID              string   `json:"tmdb_id"`
	VoteAverage         float64  `json:"vote_average"`
	VoteCount           int      `json:"vote_count"`
	MovieInitials       string   `json:"movie_initials"`
	ChallengeID         string   `json:"challenge_id"`
	Poster              bool     `json:"poster"`
	Screenshots         bool     `json:"screenshots"`
	ScreenshotCount     int      `json:"screenshot_count"`
}

// Load reads the catalog at path. A missing file is not an error and yields
// an empty catalog; a file that exists but cannot be parsed is an error, so
// a corrupt catalog is never silently replaced.
func Load(path string) ([]Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var movies []Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return movies, nil
}

// Save writes the catalog to path, indented and with non-ASCII text kept
// readable.
func Save(path string, movies []Movie) error {
	if movies == nil {
		movies = []Movie{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(movies); err != nil {
		f.Close()
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return f.Close()
}

// Sort orders the catalog in place: records with numeric TMDB IDs first in
// ascending numeric order, then the rest lexicographically. The sort is
// stable.
func Sort(movies []Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		a, aerr := strconv.Atoi(movies[i].TMDBID)
		b, berr := strconv.Atoi(movies[j].TMDBID)
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return movies[i].TMDBID < movies[j].TMDBID
		}
	})
}
