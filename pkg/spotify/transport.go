package spotify

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
)

// maxRetryAfter caps how long a Retry-After header may stall a request.
const maxRetryAfter = 30 * time.Second

// endpoint builds an absolute URL for an API path and query.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// get performs an authenticated GET and decodes the JSON body into out.
//
// It handles:
// - Bearer authentication from the configured token source
// - Retries with exponential backoff on network errors, 429 and 5xx
// - Retry-After on rate-limited responses
// - Context cancellation between attempts
func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("spotify: request canceled: %w", err)
		}

		c.logDebugf("spotify: GET %s (attempt %d/%d)", rawURL, attempt+1, c.maxRetries)

		retryAfter, err := c.do(ctx, rawURL, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == c.maxRetries-1 {
			break
		}

		delay := backoff
		if retryAfter > 0 {
			delay = retryAfter
		}
		c.logDebugf("spotify: retrying in %s after: %v", delay, err)
		if !sleep(ctx, delay) {
			return fmt.Errorf("spotify: request canceled: %w", ctx.Err())
		}
		backoff *= 2
	}

	return lastErr
}

// do performs a single attempt. The returned duration is the server's
// Retry-After hint, zero if none was given.
func (c *Client) do(ctx context.Context, rawURL string, out interface{}) (time.Duration, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return 0, fmt.Errorf("spotify: failed to obtain token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("spotify: failed to create request: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &netError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var body errorBody
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(data, &body) == nil {
				apiErr.Message = body.Error.Message
			}
		}
		return parseRetryAfter(resp), apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("spotify: failed to decode response: %w", err)
	}

	return 0, nil
}

// netError marks transport-level failures, which are always retried.
type netError struct {
	err error
}

func (e *netError) Error() string { return fmt.Sprintf("spotify: http request failed: %v", e.err) }
func (e *netError) Unwrap() error { return e.err }

// shouldRetry reports whether err is worth another attempt.
func shouldRetry(err error) bool {
	var nErr *netError
	if errors.As(err, &nErr) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}

	var d time.Duration
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		d = time.Duration(seconds) * time.Second
	} else if when, err := http.ParseTime(raw); err == nil {
		d = time.Until(when)
	}

	if d < 0 {
		return 0
	}
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
