package nyt

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
	defaultBaseURL = "https://api.nytimes.com/svc/books/v3"
	defaultTimeout = 30 * time.Second
)

// Client implements domain.BestsellerRepository against the NYT Books API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new NYT Books API client
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

// BestsellerList fetches the current edition of a named bestseller list.
func (c *Client) BestsellerList(ctx context.Context, listName string) ([]domain.BestsellerEntry, error) {
	params := url.Values{}
	params.Set("api-key", c.apiKey)

	reqURL := fmt.Sprintf("%s/lists/current/%s.json?%s", c.baseURL, url.PathEscape(listName), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("nyt request", "list", listName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("nyt request failed", "list", listName, "error", err)
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

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("nyt request error", "list", listName, "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	entries := make([]domain.BestsellerEntry, 0, len(parsed.Results.Books))
	for _, b := range parsed.Results.Books {
		entries = append(entries, domain.BestsellerEntry{
			Rank:        b.Rank,
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			WeeksOnList: b.WeeksOnList,
			ISBN13:      b.PrimaryISBN13,
		})
	}
	return entries, nil
}
