// Package fetcher turns TMDB movie responses into catalog records, applying
// the derivation and redaction rules the catalog promises: top-billed cast,
// director, trimmed company list, formatted revenue, decade, initials, and
// name-redacted plot and tagline.
package fetcher

import (
	"context"
	"sort"
	"strconv"

	"github.com/cineguess/cinedex/internal/catalog"
	"github.com/cineguess/cinedex/internal/normalize"
	"github.com/cineguess/cinedex/internal/tmdb"
)

const (
	maxCast      = 6
	maxCompanies = 2
)

// Fetcher fetches movies from TMDB and builds catalog records.
type Fetcher struct {
	client *tmdb.Client
}

// New returns a Fetcher backed by the given client.
func New(client *tmdb.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves details and credits for one TMDB ID and builds its catalog
// record. The returned record carries zero folder-presence flags; the
// reconciler owns those.
func (f *Fetcher) Fetch(ctx context.Context, id string) (catalog.Movie, error) {
	m, err := f.client.GetMovie(ctx, id)
	if err != nil {
		return catalog.Movie{}, err
	}
	return BuildRecord(id, m), nil
}

// BuildRecord derives a catalog record from a TMDB movie response. The
// requested ID is kept only when the response carries no ID of its own.
func BuildRecord(requestedID string, m *tmdb.Movie) catalog.Movie {
	cast := topCast(m.Credits.Cast)
	director := findDirector(m.Credits.Crew)

	companies := make([]string, 0, maxCompanies)
	for _, c := range m.ProductionCompanies {
		if len(companies) == maxCompanies {
			break
		}
		companies = append(companies, c.Name)
	}

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}

	// Cast, director and title are scrubbed from the free-text fields so the
	// catalog can be used for guessing games without giving the answer away.
	redact := append(append([]string{}, cast...), director, m.Title)

	id := requestedID
	if m.ID != 0 {
		id = strconv.Itoa(m.ID)
	}

	return catalog.Movie{
		Cast:                cast,
		Decade:              normalize.Decade(m.ReleaseDate),
		Director:            director,
		Genres:              genres,
		OriginalLanguage:    m.OriginalLanguage,
		Plot:                normalize.RedactNames(m.Overview, redact),
		Popularity:          m.Popularity,
		ProductionCompanies: companies,
		ReleaseDate:         m.ReleaseDate,
		Revenue:             normalize.Currency(m.Revenue),
		Tagline:             normalize.RedactNames(m.Tagline, redact),
		Title:               m.Title,
		TMDBID:              id,
		VoteAverage:         m.VoteAverage,
		VoteCount:           m.VoteCount,
		MovieInitials:       normalize.Initials(m.Title),
	}
}

// topCast returns up to maxCast names ordered by billing. Members without a
// billing order sort after everyone who has one; ties keep response order.
func topCast(members []tmdb.CastMember) []string {
	sorted := make([]tmdb.CastMember, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := sorted[i].Order, sorted[j].Order
		switch {
		case oi == nil:
			return false
		case oj == nil:
			return true
		default:
			return *oi < *oj
		}
	})

	names := make([]string, 0, maxCast)
	for _, m := range sorted {
		if len(names) == maxCast {
			break
		}
		names = append(names, m.Name)
	}
	return names
}

func findDirector(crew []tmdb.CrewMember) string {
	for _, m := range crew {
		if m.Job == "Director" {
			return m.Name
		}
	}
	return ""
}
