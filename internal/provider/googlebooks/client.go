package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"
	defaultTimeout = 30 * time.Second

	// Google Books caps maxResults at 40
	searchMaxResults = "40"
)

// Client implements domain.BookRepository against the Google Books API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Google Books API client. The key is optional for
// search but raises quota limits when present.
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

func (c *Client) query(ctx context.Context, q string) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", searchMaxResults)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("google books request", "q", q)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("google books request failed", "error", err)
		return nil, domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("google books request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed volumesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return parsed.Items, nil
}

// SearchBooks runs a text or author-scoped volumes search. The general form
// also matches the query against the author field, which balances title and
// author hits for free-text queries.
func (c *Client) SearchBooks(ctx context.Context, query string, mode domain.BookSearchMode) ([]domain.CatalogItem, error) {
	if query == "" {
		return nil, nil
	}

	var q string
	switch mode {
	case domain.BookSearchAuthor:
		q = fmt.Sprintf("inauthor:%q", query)
	default:
		q = fmt.Sprintf("%s OR inauthor:%s", query, query)
	}

	volumes, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(volumes))
	for _, v := range volumes {
		if item, ok := MapVolume(v); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// BookByISBN looks up a single volume by ISBN. ok is false when the provider
// returned no match.
func (c *Client) BookByISBN(ctx context.Context, isbn string) (domain.CatalogItem, bool, error) {
	if isbn == "" {
		return domain.CatalogItem{}, false, nil
	}

	volumes, err := c.query(ctx, "isbn:"+isbn)
	if err != nil {
		return domain.CatalogItem{}, false, err
	}
	if len(volumes) == 0 {
		return domain.CatalogItem{}, false, nil
	}

	item, ok := MapVolume(volumes[0])
	return item, ok, nil
}
