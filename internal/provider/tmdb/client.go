package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 30 * time.Second
)

// Client implements domain.TitleRepository against The Movie Database API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// doRequest performs an authenticated GET and returns the response body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

func (c *Client) searchPage(ctx context.Context, path, query string, page int, kind domain.Kind) ([]domain.CatalogItem, int, error) {
	params := url.Values{}
	params.Set("query", query)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, 0, err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(resp.Results))
	for _, t := range resp.Results {
		if item, ok := mapTitle(t, kind); ok {
			items = append(items, item)
		}
	}
	return items, resp.TotalPages, nil
}

// SearchMovies returns one page of movie search results.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) ([]domain.CatalogItem, int, error) {
	return c.searchPage(ctx, "/search/movie", query, page, domain.KindMovie)
}

// SearchShows returns one page of TV search results.
func (c *Client) SearchShows(ctx context.Context, query string, page int) ([]domain.CatalogItem, int, error) {
	return c.searchPage(ctx, "/search/tv", query, page, domain.KindTV)
}

// SearchMulti searches people and titles in a single call.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]domain.MultiResult, error) {
	params := url.Values{}
	params.Set("query", query)

	body, err := c.doRequest(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]domain.MultiResult, 0, len(resp.Results))
	for _, t := range resp.Results {
		if r, ok := mapMulti(t); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// PersonMovieCredits returns the movie crew credits of a person.
func (c *Client) PersonMovieCredits(ctx context.Context, personID string) ([]domain.CrewCredit, error) {
	path := fmt.Sprintf("/person/%s/movie_credits", personID)
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp creditsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	credits := make([]domain.CrewCredit, 0, len(resp.Crew))
	for _, cr := range resp.Crew {
		item, ok := MapMovie(cr.Title)
		if !ok {
			continue
		}
		credits = append(credits, domain.CrewCredit{Job: cr.Job, Item: item})
	}
	return credits, nil
}

func (c *Client) recommendations(ctx context.Context, path string, kind domain.Kind) ([]domain.CatalogItem, error) {
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(resp.Results))
	for _, t := range resp.Results {
		if item, ok := mapTitle(t, kind); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// MovieRecommendations returns recommendations seeded by a movie id.
func (c *Client) MovieRecommendations(ctx context.Context, id string) ([]domain.CatalogItem, error) {
	return c.recommendations(ctx, fmt.Sprintf("/movie/%s/recommendations", id), domain.KindMovie)
}

// ShowRecommendations returns recommendations seeded by a show id.
func (c *Client) ShowRecommendations(ctx context.Context, id string) ([]domain.CatalogItem, error) {
	return c.recommendations(ctx, fmt.Sprintf("/tv/%s/recommendations", id), domain.KindTV)
}

// UpcomingMovies returns one page of upcoming theatrical releases.
func (c *Client) UpcomingMovies(ctx context.Context, page int) ([]domain.CatalogItem, int, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	body, err := c.doRequest(ctx, "/movie/upcoming", params)
	if err != nil {
		return nil, 0, err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(resp.Results))
	for _, t := range resp.Results {
		if item, ok := MapMovie(t); ok {
			items = append(items, item)
		}
	}
	return items, resp.TotalPages, nil
}

// PopularShows returns the current popular TV listing.
func (c *Client) PopularShows(ctx context.Context) ([]domain.CatalogItem, error) {
	return c.recommendations(ctx, "/tv/popular", domain.KindTV)
}

// MovieGenres returns the movie genre taxonomy.
func (c *Client) MovieGenres(ctx context.Context) ([]domain.Genre, error) {
	return c.genres(ctx, "/genre/movie/list")
}

// ShowGenres returns the TV genre taxonomy.
func (c *Client) ShowGenres(ctx context.Context) ([]domain.Genre, error) {
	return c.genres(ctx, "/genre/tv/list")
}

func (c *Client) genres(ctx context.Context, path string) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp genreListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return mapGenres(resp.Genres), nil
}
