// Package tmdb is a minimal client for The Movie Database (TMDB) v3 API,
// covering the two read endpoints this tool needs: movie details with
// credits, and the ranked poster/backdrop image lists. Image bytes are
// served from a separate CDN base URL.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBase serves original-size image files by TMDB file path.
	DefaultImageBase = "https://image.tmdb.org/t/p/original"
)

// APIError is a non-2xx response from the TMDB API or image CDN.
type APIError struct {
	Status int
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb: HTTP %d for %s", e.Status, e.Path)
}

// IsNotFound reports whether the requested resource does not exist.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// Client talks to the TMDB API. API calls are spaced by an internal rate
// limiter so batch runs stay under TMDB's request limits; CDN downloads are
// not limited.
type Client struct {
	apiKey    string
	baseURL   string
	imageBase string
	http      *http.Client
	limiter   *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithImageBase overrides the image CDN base URL.
func WithImageBase(u string) Option {
	return func(c *Client) { c.imageBase = u }
}

// WithDelay sets the minimum spacing between API calls. Zero disables the
// limiter.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client authenticated with the given v3 API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		imageBase: DefaultImageBase,
		http:      &http.Client{Timeout: 20 * time.Second},
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Genre is a movie genre entry.
type Genre struct {
	Name string `json:"name"`
}

// Company is a production company entry.
type Company struct {
	Name string `json:"name"`
}

// CastMember is one cast credit. Order is the billing position; a nil Order
// means TMDB did not provide one and the member bills last.
type CastMember struct {
	Name  string `json:"name"`
	Order *int   `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the cast and crew lists appended to a movie response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Movie is the response from GET /movie/{id}?append_to_response=credits.
type Movie struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	OriginalLanguage    string    `json:"original_language"`
	ReleaseDate         string    `json:"release_date"`
	Tagline             string    `json:"tagline"`
	Overview            string    `json:"overview"`
	Revenue             int64     `json:"revenue"`
	Popularity          float64   `json:"popularity"`
	VoteAverage         float64   `json:"vote_average"`
	VoteCount           int       `json:"vote_count"`
	Genres              []Genre   `json:"genres"`
	ProductionCompanies []Company `json:"production_companies"`
	Credits             Credits   `json:"credits"`
}

// Image is one poster or backdrop reference.
type Image struct {
	FilePath    string  `json:"file_path"`
	VoteAverage float64 `json:"vote_average"`
}

// Images is the response from GET /movie/{id}/images.
type Images struct {
	Posters   []Image `json:"posters"`
	Backdrops []Image `json:"backdrops"`
}

// GetMovie fetches movie details including credits in a single call.
func (c *Client) GetMovie(ctx context.Context, id string) (*Movie, error) {
	query := url.Values{}
	query.Set("append_to_response", "credits")

	var m Movie
	if err := c.get(ctx, "/movie/"+id, query, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetImages fetches the poster and backdrop reference lists for a movie.
func (c *Client) GetImages(ctx context.Context, id string) (*Images, error) {
	var imgs Images
	if err := c.get(ctx, "/movie/"+id+"/images", nil, &imgs); err != nil {
		return nil, err
	}
	return &imgs, nil
}

// Download fetches the image at the given TMDB file path from the CDN and
// writes it to dest. The bytes are read fully before the file is written, so
// a failed transfer never leaves a truncated file behind.
func (c *Client) Download(ctx context.Context, filePath, dest string) error {
	srcURL := c.imageBase + filePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("tmdb download %s: %w", filePath, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb download %s: %w", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Path: filePath}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("tmdb download %s: %w", filePath, err)
	}
	return os.WriteFile(dest, data, 0o644)
}

// get performs one rate-limited API call and decodes the JSON response into
// dest. There are no retries: a failed call surfaces immediately and the
// caller decides whether to skip or abort.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	if c.apiKey == "" {
		return fmt.Errorf("tmdb: API key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("tmdb decode %s: %w", path, err)
	}
	return nil
}
