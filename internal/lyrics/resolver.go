// Package lyrics looks up song lyrics on lyrics.ovh.
package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public lyrics.ovh API.
	DefaultBaseURL = "https://api.lyrics.ovh"

	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Status is the outcome of a lookup.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusServiceError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not found"
	case StatusServiceError:
		return "service error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a lookup. Text is set only when found and
// Detail only when the lookup did not succeed.
type Result struct {
	status Status
	text   string
	detail string
}

// Found returns a successful result.
func Found(text string) Result { return Result{status: StatusFound, text: text} }

// NotFound returns a result for a song with no lyrics on record.
func NotFound(detail string) Result { return Result{status: StatusNotFound, detail: detail} }

// ServiceError returns a result for a lookup that could not be completed.
func ServiceError(detail string) Result { return Result{status: StatusServiceError, detail: detail} }

func (r Result) Status() Status { return r.status }
func (r Result) Text() string   { return r.text }
func (r Result) Detail() string { return r.detail }

// Config holds resolver configuration. All fields are optional.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// Resolver fetches lyrics for a song.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger
}

// New creates a Resolver.
func New(cfg Config, logger zerolog.Logger) *Resolver {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Resolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
		userAgent:  cfg.UserAgent,
		logger:     logger.With().Str("component", "lyrics").Logger(),
	}
}

// Resolve looks up the lyrics of title by artist. It never fails: transport
// problems are reported as a ServiceError result, and any answer other than
// a 200 carrying non-blank lyrics as NotFound.
func (r *Resolver) Resolve(ctx context.Context, artist, title string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/%s/%s", r.baseURL, url.PathEscape(artist), url.PathEscape(title))
	log := r.logger.With().Str("artist", artist).Str("title", title).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ServiceError(fmt.Sprintf("invalid request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Lyrics lookup failed")
		return ServiceError(describe(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		log.Debug().Int("status", resp.StatusCode).Msg("No lyrics")
		return NotFound(resp.Status)
	}

	var body struct {
		Lyrics *string `json:"lyrics"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		if ctx.Err() != nil {
			return ServiceError(describe(ctx.Err()))
		}
		log.Debug().Err(err).Msg("Undecodable lyrics response")
		return NotFound("malformed response")
	}
	if body.Lyrics == nil || strings.TrimSpace(*body.Lyrics) == "" {
		return NotFound("no lyrics in response")
	}

	return Found(*body.Lyrics)
}

func describe(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return err.Error()
	}
}
