// Package remote fetches the server-side quote set used by sync.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

const (
	DefaultSourceURL  = "https://jsonplaceholder.typicode.com/posts"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRecords = 5

	// ServerCategory is assigned to every record coming from the server
	ServerCategory = "Server"

	maxBodyBytes = 4 << 20
)

type Options struct {
	SourceURL string
	Timeout   time.Duration
	// UseResponse maps the fetched posts into quotes. When false the body is
	// only checked for shape and StandInQuotes is returned.
	UseResponse bool
	MaxRecords  int
}

// Client talks to the quote server
type Client struct {
	httpClient  *http.Client
	sourceURL   string
	useResponse bool
	maxRecords  int
}

func NewClient(opts Options) *Client {
	if opts.SourceURL == "" {
		opts.SourceURL = DefaultSourceURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = DefaultMaxRecords
	}
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		sourceURL:   opts.SourceURL,
		useResponse: opts.UseResponse,
		maxRecords:  opts.MaxRecords,
	}
}

// post is a single element of the server response
type post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StandInQuotes is the fixed server data set applied on every successful fetch.
func StandInQuotes() []entities.Quote {
	return []entities.Quote{
		{ID: 1, Text: "Server quote 1", Category: ServerCategory},
		{ID: 2, Text: "Server quote 2", Category: ServerCategory},
	}
}

// Fetch retrieves the server quote set. There are no retries; a failure is
// left to the next scheduled sync.
func (c *Client) Fetch(ctx context.Context) ([]entities.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var posts []post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if posts == nil {
		// "null" decodes without error
		return nil, ErrUnexpectedResponse
	}

	if !c.useResponse {
		return StandInQuotes(), nil
	}
	return mapPosts(posts, c.maxRecords), nil
}

func mapPosts(posts []post, limit int) []entities.Quote {
	if len(posts) > limit {
		posts = posts[:limit]
	}
	quotes := make([]entities.Quote, 0, len(posts))
	for _, p := range posts {
		quotes = append(quotes, entities.Quote{
			ID:       p.ID,
			Text:     p.Title,
			Category: ServerCategory,
		})
	}
	return quotes
}
