// internal/adapter/upstream/client.go

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// endpointPaths maps engine endpoint names to gateway URL paths. The
// engine only ever speaks endpoint names; the mapping is a transport
// detail owned here.
var endpointPaths = map[string]string{
	"primary-detail":      "/video/info",
	"comments":            "/video/comments",
	"related-content":     "/video/related",
	"creator-info":        "/user/info",
	"creator-top-posts":   "/user/popular-posts",
	"creator-liked-posts": "/user/favorite-posts",
	"creator-oldest-posts": "/user/oldest-posts",
	"creator-followers":   "/user/followers",
	"creator-followings":  "/user/followings",
	"sound-info":          "/music/info",
	"sound-posts":         "/music/posts",
	"hashtag-info":        "/challenge/info",
	"hashtag-posts":       "/challenge/posts",
	"trending-content":    "/feed/list",
	"trending-sounds":     "/music/trending",
	"trending-hashtags":   "/challenge/trending",
	"general-search":      "/feed/search",
}

// Config holds upstream gateway configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	APIHost        string
	RequestTimeout time.Duration
}

// Client is the single Endpoint Client the engine consumes: one named
// resource per call, static credential, one attempt, explicit timeout.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates an upstream gateway client.
func NewClient(config Config) *Client {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config: config,
	}
}

// Fetch performs a single GET against the named endpoint. Any transport
// error, non-2xx status or non-JSON body is returned as an error; the
// engine decides whether that aborts the run.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	path, ok := endpointPaths[endpoint]
	if !ok {
		return nil, fmt.Errorf("unknown endpoint: %s", endpoint)
	}

	// Build request URL
	reqURL, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("error building URL for %s: %w", endpoint, err)
	}
	query := reqURL.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.config.APIKey)
	if c.config.APIHost != "" {
		req.Header.Set("x-rapidapi-host", c.config.APIHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint %s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", endpoint, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("endpoint %s returned malformed JSON", endpoint)
	}

	return body, nil
}
