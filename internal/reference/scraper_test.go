package reference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/pkg/wikipedia"
	"github.com/rs/zerolog"
)

const discographyPage = `<html><body>
<table class="navbox"><tr>
<th class="navbox-group">Studio albums</th>
<td><ul>
<li><i><a href="/wiki/Thriller_(album)">Thriller</a></i></li>
<li><i><a href="/wiki/Bad_(album)">Bad</a></i></li>
<li><i>  BAD </i></li>
</ul></td>
</tr></table>
</body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	wiki, err := wikipedia.NewClient(wikipedia.Config{
		APIURL:            server.URL + "/w/api.php",
		WikiURL:           server.URL + "/wiki",
		RequestsPerSecond: 1000,
		MaxRetries:        -1,
	})
	if err != nil {
		t.Fatalf("failed to create wikipedia client: %v", err)
	}
	return New(wiki, zerolog.Nop()), server
}

func TestScraper_StudioAlbums(t *testing.T) {
	scraper, server := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Michael Jackson albums discography"}]}}`))
		case "/wiki/Michael_Jackson_albums_discography":
			_, _ = w.Write([]byte(discographyPage))
		default:
			http.NotFound(w, r)
		}
	})

	albums, err := scraper.StudioAlbums(context.Background(), "Michael Jackson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []discography.Album{
		{Title: "Thriller", Source: discography.SourceReference, Link: server.URL + "/wiki/Thriller_(album)"},
		{Title: "Bad", Source: discography.SourceReference, Link: server.URL + "/wiki/Bad_(album)"},
	}
	if len(albums) != len(want) {
		t.Fatalf("got %d albums %+v, want %d", len(albums), albums, len(want))
	}
	for i := range want {
		if albums[i] != want[i] {
			t.Errorf("album %d = %+v, want %+v", i, albums[i], want[i])
		}
	}
}

func TestScraper_FallsBackToDerivedTitle(t *testing.T) {
	tests := []struct {
		name   string
		search http.HandlerFunc
	}{
		{
			name: "empty search",
			search: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
			},
		},
		{
			name: "search failure",
			search: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraper, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/w/api.php":
					tt.search(w, r)
				case "/wiki/Michael_Jackson_discography":
					_, _ = w.Write([]byte(discographyPage))
				default:
					http.NotFound(w, r)
				}
			})

			albums, err := scraper.StudioAlbums(context.Background(), "michael jackson")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(albums) != 2 {
				t.Errorf("got %d albums, want 2", len(albums))
			}
		})
	}
}

func TestScraper_NoStudioAlbumsSection(t *testing.T) {
	scraper, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		default:
			_, _ = w.Write([]byte(`<html><body><h2>Singles</h2><ul><li>Billie Jean</li></ul></body></html>`))
		}
	})

	albums, err := scraper.StudioAlbums(context.Background(), "Michael Jackson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if albums == nil || len(albums) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", albums)
	}
}

func TestScraper_PageUnavailable(t *testing.T) {
	scraper, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		default:
			http.NotFound(w, r)
		}
	})

	_, err := scraper.StudioAlbums(context.Background(), "Nobody")
	if !errors.Is(err, discography.ErrReferenceUnavailable) {
		t.Fatalf("expected ErrReferenceUnavailable, got %v", err)
	}
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		artist string
		want   string
	}{
		{artist: "michael jackson", want: "Michael_Jackson_discography"},
		{artist: "  AC/DC ", want: "AC/DC_discography"},
		{artist: "björk", want: "Björk_discography"},
	}
	for _, tt := range tests {
		if got := FallbackTitle(tt.artist); got != tt.want {
			t.Errorf("FallbackTitle(%q) = %q, want %q", tt.artist, got, tt.want)
		}
	}
}
