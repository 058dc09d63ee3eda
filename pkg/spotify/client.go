// Package spotify provides a small client for the read-only parts of the
// Spotify Web API used to browse an artist's discography.
//
// Example usage:
//
//	import (
//	    "github.com/jfmyers9/lyricist/pkg/spotify"
//	    "golang.org/x/oauth2/clientcredentials"
//	)
//
//	creds := &clientcredentials.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    TokenURL:     spotify.TokenURL,
//	}
//
//	client, err := spotify.NewClient(spotify.Config{
//	    TokenSource: creds.TokenSource(ctx),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	artists, err := client.Artists().Search(ctx, "Michael Jackson", 1)
package spotify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config holds client configuration.
type Config struct {
	TokenSource oauth2.TokenSource // Required: source of bearer tokens
	HTTPClient  *http.Client       // Optional: HTTP client (defaults to a client with a 10s timeout)
	BaseURL     string             // Optional: API base URL (defaults to DefaultBaseURL, used for testing)
	Market      string             // Optional: ISO 3166-1 country code applied to catalog requests
	MaxRetries  int                // Optional: attempts per request (defaults to 3)
	Backoff     time.Duration      // Optional: first retry delay (defaults to 500ms)
	Logger      Logger             // Optional: debug logger
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

const (
	// DefaultBaseURL is the Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// TokenURL is the client-credentials token endpoint.
	TokenURL = "https://accounts.spotify.com/api/token"

	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
	defaultTimeout    = 10 * time.Second
)

// Client is the entry point for Spotify API operations.
type Client struct {
	tokens     oauth2.TokenSource
	httpClient *http.Client
	baseURL    string
	market     string
	maxRetries int
	backoff    time.Duration
	logger     Logger

	artists *ArtistService
	albums  *AlbumService
}

// NewClient creates a new Spotify API client.
//
// Returns an error if no TokenSource is configured.
func NewClient(cfg Config) (*Client, error) {
	if cfg.TokenSource == nil {
		return nil, fmt.Errorf("%w: TokenSource is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	c := &Client{
		tokens:     cfg.TokenSource,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		market:     cfg.Market,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     cfg.Logger,
	}

	c.artists = &ArtistService{client: c}
	c.albums = &AlbumService{client: c}

	return c, nil
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumService {
	return c.albums
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
