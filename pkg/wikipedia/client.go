// Package wikipedia provides a rate-limited client for the MediaWiki search
// API and rendered article pages, plus an extractor for the "Studio albums"
// list of a discography article.
//
// Example usage:
//
//	client, err := wikipedia.NewClient(wikipedia.Config{
//	    UserAgent: "lyricist/1.0 (https://github.com/jfmyers9/lyricist)",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hits, err := client.Search(ctx, "Michael Jackson discography", 1)
//	doc, err := client.Page(ctx, hits[0].Title)
//	entries, err := wikipedia.ParseStudioAlbums(bytes.NewReader(doc.HTML), doc.URL)
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultAPIURL is the MediaWiki action API of English Wikipedia.
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

	// DefaultWikiURL is the article path prefix of English Wikipedia.
	DefaultWikiURL = "https://en.wikipedia.org/wiki"

	// DefaultUserAgent identifies the client per the Wikimedia User-Agent policy.
	DefaultUserAgent = "lyricist/1.0 (https://github.com/jfmyers9/lyricist)"

	defaultRequestsPerSecond = 5
	defaultMaxRetries        = 2
	defaultTimeout           = 10 * time.Second
	maxPageBytes             = 8 << 20
)

// ErrPageNotFound is returned when an article does not exist.
var ErrPageNotFound = errors.New("wikipedia: page not found")

// Error is a non-success HTTP response.
type Error struct {
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("wikipedia: unexpected status %d", e.StatusCode)
}

// Temporary reports whether the request may succeed if retried.
func (e *Error) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Logger is an optional interface for logging.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Config holds client configuration. All fields are optional.
type Config struct {
	HTTPClient        *http.Client
	APIURL            string
	WikiURL           string
	UserAgent         string
	RequestsPerSecond float64
	MaxRetries        int
	Logger            Logger
}

// Client talks to a MediaWiki installation.
type Client struct {
	httpClient *http.Client
	apiURL     string
	wikiURL    string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	logger     Logger
}

// SearchResult is a single full-text search hit.
type SearchResult struct {
	Title   string `json:"title"`
	PageID  int    `json:"pageid"`
	Snippet string `json:"snippet"`
}

// Document is a fetched article page.
type Document struct {
	Title string
	URL   *url.URL // final URL after redirects, used to resolve relative links
	HTML  []byte
}

// NewClient creates a new Wikipedia client.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("wikipedia: invalid API URL: %w", err)
	}

	wikiURL := cfg.WikiURL
	if wikiURL == "" {
		wikiURL = DefaultWikiURL
	}
	if _, err := url.Parse(wikiURL); err != nil {
		return nil, fmt.Errorf("wikipedia: invalid wiki URL: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	} else if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		wikiURL:    strings.TrimRight(wikiURL, "/"),
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: maxRetries,
		logger:     cfg.Logger,
	}, nil
}

// Search runs a full-text search and returns up to limit hits, best first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("wikipedia: search query is required")
	}
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("format", "json")

	resp, err := c.get(ctx, c.apiURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("wikipedia: search %q failed: %w", query, err)
	}
	defer resp.Body.Close()

	var body struct {
		Query struct {
			Search []SearchResult `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("wikipedia: failed to decode search response: %w", err)
	}

	return body.Query.Search, nil
}

// PageURL returns the article URL for a title.
func (c *Client) PageURL(title string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	return c.wikiURL + "/" + url.PathEscape(name)
}

// Page fetches the rendered HTML of an article.
//
// Returns ErrPageNotFound if the article does not exist.
func (c *Client) Page(ctx context.Context, title string) (*Document, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("wikipedia: page title is required")
	}

	resp, err := c.get(ctx, c.PageURL(title))
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, title)
		}
		return nil, fmt.Errorf("wikipedia: failed to fetch page %q: %w", title, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("wikipedia: failed to read page %q: %w", title, err)
	}

	return &Document{
		Title: title,
		URL:   resp.Request.URL,
		HTML:  data,
	}, nil
}

// get performs a paced GET and returns the response on 200. The caller
// closes the body. Network errors, 429 and 5xx are retried with backoff.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 250 * time.Millisecond
			c.logDebugf("wikipedia: retrying in %s after: %v", backoff, lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		c.logDebugf("wikipedia: GET %s", rawURL)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
			resp.Body.Close()
			apiErr := &Error{StatusCode: resp.StatusCode}
			if !apiErr.Temporary() {
				return nil, apiErr
			}
			lastErr = apiErr
			continue
		}

		return resp, nil
	}
	return nil, fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
