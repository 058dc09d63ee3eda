package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		BaseURL:     server.URL,
		Backoff:     time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", got, "Bearer test-token")
	}
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	client, err := NewClient(Config{
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "x"}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.maxRetries != defaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", client.maxRetries, defaultMaxRetries)
	}
}

func TestArtistService_Search(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantID     string
		wantErr    error
	}{
		{
			name:       "returns first artist",
			statusCode: http.StatusOK,
			response:   `{"artists":{"items":[{"id":"3fMbdgg4jU18AjLCKBhRSm","name":"Michael Jackson"}],"total":1}}`,
			wantID:     "3fMbdgg4jU18AjLCKBhRSm",
		},
		{
			name:       "no results",
			statusCode: http.StatusOK,
			response:   `{"artists":{"items":[],"total":0}}`,
			wantErr:    ErrArtistNotFound,
		},
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			response:   `{"error":{"status":401,"message":"Invalid access token"}}`,
			wantErr:    &Error{StatusCode: http.StatusUnauthorized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requireBearer(t, r)
				if r.URL.Path != "/search" {
					t.Errorf("path = %q, want /search", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("type") != "artist" || q.Get("q") != "Michael Jackson" || q.Get("limit") != "1" {
					t.Errorf("unexpected query: %s", r.URL.RawQuery)
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))

			artists, err := client.Artists().Search(context.Background(), "Michael Jackson", 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if artists[0].ID != tt.wantID {
				t.Errorf("ID = %q, want %q", artists[0].ID, tt.wantID)
			}
		})
	}
}

func TestArtistService_Search_RejectsEmptyName(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	if _, err := client.Artists().Search(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected error for empty artist name")
	}
	if hits.Load() != 0 {
		t.Errorf("expected no requests, got %d", hits.Load())
	}
}

func TestArtistService_Albums_FollowsPagination(t *testing.T) {
	var serverURL string
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		if r.URL.Path != "/artists/artist-1/albums" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("include_groups"); got != "album" {
			t.Errorf("include_groups = %q, want album", got)
		}

		switch r.URL.Query().Get("offset") {
		case "":
			fmt.Fprintf(w, `{"items":[
				{"id":"a1","name":"Off the Wall","release_date":"1979-08-10","total_tracks":10},
				{"id":"a2","name":"Thriller","release_date":"1982-11-30","total_tracks":9}
			],"next":"%s/artists/artist-1/albums?include_groups=album&limit=50&offset=2","total":3}`, serverURL)
		case "2":
			_, _ = w.Write([]byte(`{"items":[{"id":"a3","name":"Bad","release_date":"1987-08-31"}],"next":null,"total":3}`))
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	serverURL = server.URL

	albums, err := client.Artists().Albums(context.Background(), "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Off the Wall", "Thriller", "Bad"}
	if len(albums) != len(want) {
		t.Fatalf("got %d albums, want %d", len(albums), len(want))
	}
	for i, name := range want {
		if albums[i].Name != name {
			t.Errorf("albums[%d] = %q, want %q", i, albums[i].Name, name)
		}
	}
	if albums[1].TotalTracks != 9 || albums[1].ReleaseDate != "1982-11-30" {
		t.Errorf("unexpected album fields: %+v", albums[1])
	}
}

func TestArtistService_Albums_IgnoresForeignNextLink(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[{"id":"a1","name":"Bad"}],"next":"https://evil.example.com/page2"}`))
	}))

	albums, err := client.Artists().Albums(context.Background(), "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(albums) != 1 {
		t.Errorf("got %d albums, want 1", len(albums))
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 request, got %d", hits.Load())
	}
}

func TestAlbumService_Tracks(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		if r.URL.Path != "/albums/album-1/tracks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"items":[
			{"id":"t1","name":"Wanna Be Startin' Somethin'","track_number":1,"disc_number":1,"duration_ms":363000},
			{"id":"t2","name":"Baby Be Mine","track_number":2,"disc_number":1,"duration_ms":260000}
		],"next":null}`))
	}))

	tracks, err := client.Albums().Tracks(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[1].Name != "Baby Be Mine" || tracks[1].TrackNumber != 2 || tracks[1].DurationMs != 260000 {
		t.Errorf("unexpected track: %+v", tracks[1])
	}
}

func TestClient_RetriesTemporaryErrors(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantAttempts int32
		wantErr      bool
	}{
		{
			name:         "retries on 503 then succeeds",
			statuses:     []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK},
			wantAttempts: 3,
		},
		{
			name:         "exhausts retries on 429",
			statuses:     []int{http.StatusTooManyRequests},
			wantAttempts: 3,
			wantErr:      true,
		},
		{
			name:         "does not retry 404",
			statuses:     []int{http.StatusNotFound},
			wantAttempts: 1,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(attempts.Add(1))
				status := tt.statuses[len(tt.statuses)-1]
				if n <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				if status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "0")
				}
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{"items":[],"next":null}`))
				}
			}))

			_, err := client.Albums().Tracks(context.Background(), "album-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if got := attempts.Load(); got != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", got, tt.wantAttempts)
			}
		})
	}
}

func TestClient_TokenError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	}))
	defer server.Close()

	client, err := NewClient(Config{
		TokenSource: failingTokenSource{},
		BaseURL:     server.URL,
		MaxRetries:  1,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Artists().Search(context.Background(), "Queen", 1)
	if err == nil || !strings.Contains(err.Error(), "failed to obtain token") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Albums().Tracks(ctx, "album-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{header: "", want: 0},
		{header: "2", want: 2 * time.Second},
		{header: "0", want: 0},
		{header: "garbage", want: 0},
		{header: "3600", want: maxRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := parseRetryAfter(resp); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("invalid_client")
}
