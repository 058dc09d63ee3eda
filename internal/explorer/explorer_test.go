package explorer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/internal/lyrics"
	"github.com/rs/zerolog"
)

type fakeCatalog struct {
	albums    []discography.Album
	tracks    map[string][]discography.Track
	albumsErr error
	block     bool
}

func (f *fakeCatalog) ListAlbums(ctx context.Context, artistName string) ([]discography.Album, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.albums, f.albumsErr
}

func (f *fakeCatalog) ListTracks(ctx context.Context, albumID string) ([]discography.Track, error) {
	tracks, ok := f.tracks[albumID]
	if !ok {
		return nil, fmt.Errorf("unknown album %s", albumID)
	}
	return tracks, nil
}

type fakeReference struct {
	albums []discography.Album
	err    error
	block  bool
}

func (f *fakeReference) StudioAlbums(ctx context.Context, artistName string) ([]discography.Album, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.albums, f.err
}

type fakeLyrics struct {
	result lyrics.Result
}

func (f *fakeLyrics) Resolve(ctx context.Context, artist, title string) lyrics.Result {
	return f.result
}

func catalogAlbums(titles ...string) []discography.Album {
	albums := make([]discography.Album, len(titles))
	for i, title := range titles {
		albums[i] = discography.Album{
			Title:      title,
			ExternalID: strings.ToLower(strings.ReplaceAll(title, " ", "-")),
			Source:     discography.SourceCatalog,
		}
	}
	return albums
}

func referenceAlbums(titles ...string) []discography.Album {
	albums := make([]discography.Album, len(titles))
	for i, title := range titles {
		albums[i] = discography.Album{Title: title, Source: discography.SourceReference}
	}
	return albums
}

func titles(albums []discography.Album) []string {
	out := make([]string, len(albums))
	for i, a := range albums {
		out[i] = a.Title
	}
	return out
}

func newTestExplorer(t *testing.T, cat Catalog, ref Reference, lyr LyricsSource, timeout time.Duration) *Explorer {
	t.Helper()
	e, err := New(Options{
		Catalog:   cat,
		Reference: ref,
		Lyrics:    lyr,
		Timeout:   timeout,
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("failed to create explorer: %v", err)
	}
	return e
}

func TestNew_RequiresLyrics(t *testing.T) {
	if _, err := New(Options{Catalog: &fakeCatalog{}, Reference: &fakeReference{}}); err == nil {
		t.Fatal("expected error without a lyrics source")
	}
}

func TestExplorer_LyricsOnly(t *testing.T) {
	e, err := New(Options{Lyrics: &fakeLyrics{result: lyrics.Found("la la")}, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := e.Discography(context.Background(), "Michael Jackson"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Discography error = %v, want ErrNotConfigured", err)
	}
	if _, err := e.Tracks(context.Background(), catalogAlbums("Bad")[0]); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Tracks error = %v, want ErrNotConfigured", err)
	}
	if song := e.Song(context.Background(), "a", "b"); song.Analysis == nil {
		t.Error("expected analysis for found lyrics")
	}
}

func TestExplorer_Discography(t *testing.T) {
	tests := []struct {
		name        string
		catalog     *fakeCatalog
		reference   *fakeReference
		wantTitles  []string
		wantMessage string
		wantErr     error
	}{
		{
			name:       "reconciles catalog against reference",
			catalog:    &fakeCatalog{albums: catalogAlbums("Thriller", "Bad", "Off the Wall")},
			reference:  &fakeReference{albums: referenceAlbums("Thriller", "Bad")},
			wantTitles: []string{"Thriller", "Bad"},
		},
		{
			name:        "no overlap",
			catalog:     &fakeCatalog{albums: catalogAlbums("Thriller (Live)")},
			reference:   &fakeReference{albums: referenceAlbums("Thriller")},
			wantTitles:  []string{},
			wantMessage: "no studio albums found",
			wantErr:     discography.ErrNoStudioAlbums,
		},
		{
			name:        "reference unavailable",
			catalog:     &fakeCatalog{albums: catalogAlbums("Thriller")},
			reference:   &fakeReference{err: fmt.Errorf("%w: 503", discography.ErrReferenceUnavailable)},
			wantTitles:  []string{},
			wantMessage: "reference discography unavailable",
			wantErr:     discography.ErrReferenceUnavailable,
		},
		{
			name:        "reference fails with unclassified error",
			catalog:     &fakeCatalog{albums: catalogAlbums("Thriller")},
			reference:   &fakeReference{err: errors.New("boom")},
			wantTitles:  []string{},
			wantMessage: "reference discography unavailable",
			wantErr:     discography.ErrReferenceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExplorer(t, tt.catalog, tt.reference, &fakeLyrics{}, time.Second)

			result, err := e.Discography(context.Background(), "Michael Jackson")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := titles(result.Albums); !reflect.DeepEqual(got, tt.wantTitles) {
				t.Errorf("Albums = %v, want %v", got, tt.wantTitles)
			}
			if got := result.Message(); got != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
			}
			if tt.wantErr == nil {
				if result.Err() != nil {
					t.Errorf("Err() = %v, want nil", result.Err())
				}
			} else if !errors.Is(result.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", result.Err(), tt.wantErr)
			}
		})
	}
}

func TestExplorer_Discography_ArtistNotFound(t *testing.T) {
	cat := &fakeCatalog{albumsErr: fmt.Errorf("%w: Nobody", discography.ErrArtistNotFound)}
	e := newTestExplorer(t, cat, &fakeReference{albums: referenceAlbums("Thriller")}, &fakeLyrics{}, time.Second)

	_, err := e.Discography(context.Background(), "Nobody")
	if !errors.Is(err, discography.ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
}

func TestExplorer_Discography_Timeouts(t *testing.T) {
	t.Run("catalog timeout is an error", func(t *testing.T) {
		e := newTestExplorer(t, &fakeCatalog{block: true}, &fakeReference{}, &fakeLyrics{}, 20*time.Millisecond)

		_, err := e.Discography(context.Background(), "Michael Jackson")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("reference timeout degrades", func(t *testing.T) {
		e := newTestExplorer(t,
			&fakeCatalog{albums: catalogAlbums("Thriller")},
			&fakeReference{block: true},
			&fakeLyrics{},
			20*time.Millisecond)

		result, err := e.Discography(context.Background(), "Michael Jackson")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(result.ReferenceErr, discography.ErrReferenceUnavailable) {
			t.Errorf("ReferenceErr = %v", result.ReferenceErr)
		}
		if len(result.Albums) != 0 {
			t.Errorf("expected no albums, got %v", titles(result.Albums))
		}
	})
}

func TestExplorer_Discography_EditionInsensitive(t *testing.T) {
	e, err := New(Options{
		Catalog:   &fakeCatalog{albums: catalogAlbums("Bad (Remastered)", "Thriller 25")},
		Reference: &fakeReference{albums: referenceAlbums("Bad", "Thriller")},
		Lyrics:    &fakeLyrics{},
		MatchMode: discography.MatchEditionInsensitive,
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("failed to create explorer: %v", err)
	}

	result, err := e.Discography(context.Background(), "Michael Jackson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := titles(result.Albums); !reflect.DeepEqual(got, []string{"Bad (Remastered)"}) {
		t.Errorf("Albums = %v", got)
	}
}

func TestExplorer_Tracks(t *testing.T) {
	cat := &fakeCatalog{
		tracks: map[string][]discography.Track{
			"thriller": {
				{Name: "Wanna Be Startin' Somethin'", Position: 1, Disc: 1},
				{Name: "Thriller", Position: 4, Disc: 1},
			},
		},
	}
	e := newTestExplorer(t, cat, &fakeReference{}, &fakeLyrics{}, time.Second)

	tracks, err := e.Tracks(context.Background(), catalogAlbums("Thriller")[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 || tracks[1].Name != "Thriller" {
		t.Errorf("unexpected tracks: %+v", tracks)
	}

	_, err = e.Tracks(context.Background(), discography.Album{Title: "Bad", Source: discography.SourceReference})
	if !errors.Is(err, discography.ErrAlbumNotFound) {
		t.Errorf("expected ErrAlbumNotFound for album without catalog id, got %v", err)
	}
}

func TestExplorer_Song(t *testing.T) {
	tests := []struct {
		name         string
		result       lyrics.Result
		wantAnalysis bool
		wantMessage  string
	}{
		{
			name:         "found",
			result:       lyrics.Found("I love love this song"),
			wantAnalysis: true,
		},
		{
			name:        "not found",
			result:      lyrics.NotFound("404 Not Found"),
			wantMessage: "no lyrics found",
		},
		{
			name:        "service error",
			result:      lyrics.ServiceError("request timed out"),
			wantMessage: "lyrics service unavailable: request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExplorer(t, &fakeCatalog{}, &fakeReference{}, &fakeLyrics{result: tt.result}, time.Second)

			song := e.Song(context.Background(), "Michael Jackson", "Thriller")
			if (song.Analysis != nil) != tt.wantAnalysis {
				t.Fatalf("Analysis present = %v, want %v", song.Analysis != nil, tt.wantAnalysis)
			}
			if got := song.Message(); got != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
			}
			if tt.wantAnalysis {
				if song.Analysis.Length != 5 {
					t.Errorf("Length = %d, want 5", song.Analysis.Length)
				}
				top := song.Analysis.Frequency.MostFrequent(1)
				if len(top) != 1 || top[0] != (analysis.WordCount{Word: "love", Count: 2}) {
					t.Errorf("MostFrequent(1) = %v", top)
				}
			}
		})
	}
}

func TestSelection(t *testing.T) {
	var sel Selection
	defer sel.Close()

	artist := sel.Begin(context.Background(), StageArtist)
	album := sel.Begin(context.Background(), StageAlbum)
	track := sel.Begin(context.Background(), StageTrack)

	if !artist.Current() || !album.Current() || !track.Current() {
		t.Fatal("fresh tickets should be current")
	}

	// A new album selection supersedes album and track work but not the artist.
	album2 := sel.Begin(context.Background(), StageAlbum)
	if !artist.Current() {
		t.Error("artist ticket should survive an album change")
	}
	if album.Current() || track.Current() {
		t.Error("album and track tickets should be superseded")
	}
	if !album2.Current() {
		t.Error("new album ticket should be current")
	}
	select {
	case <-album.Context().Done():
	default:
		t.Error("superseded album context should be canceled")
	}
	select {
	case <-track.Context().Done():
	default:
		t.Error("superseded track context should be canceled")
	}
	if album2.Context().Err() != nil {
		t.Error("current album context should not be canceled")
	}

	// A new artist supersedes everything.
	sel.Begin(context.Background(), StageArtist)
	if artist.Current() || album2.Current() {
		t.Error("artist change should supersede all earlier tickets")
	}
}

func TestSelection_OutOfOrderDelivery(t *testing.T) {
	var sel Selection
	defer sel.Close()

	first := sel.Begin(context.Background(), StageArtist)
	second := sel.Begin(context.Background(), StageArtist)

	applied := ""
	deliver := func(ticket *Ticket, value string) {
		if ticket.Current() {
			applied = value
		}
	}

	deliver(second, "second")
	deliver(first, "first")

	if applied != "second" {
		t.Errorf("applied = %q, want %q", applied, "second")
	}
}
