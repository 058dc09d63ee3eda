// Package explorer runs the discography and lyrics pipeline: reconcile an
// artist's studio albums, list an album's tracks, then fetch and analyze a
// song's lyrics.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/lyricist/internal/analysis"
	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/internal/lyrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each remote call when Options.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Catalog lists albums and tracks from the streaming catalog.
type Catalog interface {
	ListAlbums(ctx context.Context, artistName string) ([]discography.Album, error)
	ListTracks(ctx context.Context, albumID string) ([]discography.Track, error)
}

// Reference lists the studio albums named by the encyclopedia.
type Reference interface {
	StudioAlbums(ctx context.Context, artistName string) ([]discography.Album, error)
}

// LyricsSource looks up a song's lyrics.
type LyricsSource interface {
	Resolve(ctx context.Context, artist, title string) lyrics.Result
}

// Options configures an Explorer.
type Options struct {
	Catalog   Catalog
	Reference Reference
	Lyrics    LyricsSource
	Analyzer  analysis.Analyzer
	Timeout   time.Duration
	MatchMode discography.MatchMode
	Logger    zerolog.Logger
}

// Explorer runs pipeline stages. Each stage is independent and keeps no
// state between calls.
type Explorer struct {
	catalog   Catalog
	reference Reference
	lyrics    LyricsSource
	analyzer  analysis.Analyzer
	timeout   time.Duration
	mode      discography.MatchMode
	logger    zerolog.Logger
}

// ErrNotConfigured is returned by stages whose source was not provided.
var ErrNotConfigured = errors.New("source not configured")

// New creates an Explorer. Lyrics is required; without Catalog and
// Reference only Song is usable.
func New(opts Options) (*Explorer, error) {
	if opts.Lyrics == nil {
		return nil, fmt.Errorf("lyrics source is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Explorer{
		catalog:   opts.Catalog,
		reference: opts.Reference,
		lyrics:    opts.Lyrics,
		analyzer:  opts.Analyzer,
		timeout:   timeout,
		mode:      opts.MatchMode,
		logger:    opts.Logger.With().Str("component", "explorer").Logger(),
	}, nil
}

// DiscographyResult is the reconciled studio album list of an artist.
type DiscographyResult struct {
	Artist    string
	Catalog   []discography.Album // albums as listed by the catalog
	Reference []discography.Album // studio albums named by the reference
	Albums    []discography.Album // reconciled, in catalog order

	// ReferenceErr is set when the reference could not be read. Albums is
	// then empty.
	ReferenceErr error
}

// Err reports why Albums is empty: ErrReferenceUnavailable or
// ErrNoStudioAlbums. It is nil when albums were found.
func (r *DiscographyResult) Err() error {
	switch {
	case r.ReferenceErr != nil:
		return r.ReferenceErr
	case len(r.Albums) == 0:
		return discography.ErrNoStudioAlbums
	default:
		return nil
	}
}

// Message is the user-facing explanation for an empty result.
func (r *DiscographyResult) Message() string {
	switch {
	case r.ReferenceErr != nil:
		return "reference discography unavailable"
	case len(r.Albums) == 0:
		return "no studio albums found"
	default:
		return ""
	}
}

// Discography fetches catalog and reference listings concurrently and
// reconciles them.
//
// Catalog failures, including discography.ErrArtistNotFound, are returned as
// errors. Reference failures are recorded on the result and yield an empty
// album list.
func (e *Explorer) Discography(ctx context.Context, artistName string) (*DiscographyResult, error) {
	if e.catalog == nil || e.reference == nil {
		return nil, fmt.Errorf("discography: %w", ErrNotConfigured)
	}

	log := e.logger.With().
		Str("run_id", uuid.NewString()).
		Str("artist", artistName).
		Logger()

	result := &DiscographyResult{Artist: artistName}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, e.timeout)
		defer cancel()

		albums, err := e.catalog.ListAlbums(cctx, artistName)
		if err != nil {
			return err
		}
		result.Catalog = albums
		return nil
	})
	g.Go(func() error {
		rctx, cancel := context.WithTimeout(gctx, e.timeout)
		defer cancel()

		albums, err := e.reference.StudioAlbums(rctx, artistName)
		if err != nil {
			if !errors.Is(err, discography.ErrReferenceUnavailable) {
				err = fmt.Errorf("%w: %v", discography.ErrReferenceUnavailable, err)
			}
			result.ReferenceErr = err
			return nil
		}
		result.Reference = albums
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Debug().Err(err).Msg("Catalog lookup failed")
		return nil, err
	}

	if result.ReferenceErr != nil {
		log.Warn().Err(result.ReferenceErr).Msg("Reference discography unavailable")
		result.Albums = []discography.Album{}
	} else {
		result.Albums = discography.ReconcileWith(result.Catalog, result.Reference, e.mode)
	}

	log.Info().
		Int("catalog", len(result.Catalog)).
		Int("reference", len(result.Reference)).
		Int("albums", len(result.Albums)).
		Str("match_mode", e.mode.String()).
		Dur("elapsed", time.Since(start)).
		Msg("Reconciled discography")

	return result, nil
}

// Tracks lists the tracks of a reconciled album.
func (e *Explorer) Tracks(ctx context.Context, album discography.Album) ([]discography.Track, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("tracks: %w", ErrNotConfigured)
	}
	if album.ExternalID == "" {
		return nil, fmt.Errorf("%w: %q has no catalog id", discography.ErrAlbumNotFound, album.Title)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	tracks, err := e.catalog.ListTracks(ctx, album.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks of %q: %w", album.Title, err)
	}

	e.logger.Debug().Str("album", album.Title).Int("tracks", len(tracks)).Msg("Listed tracks")
	return tracks, nil
}

// SongResult is the lyrics of a song and, when found, their analysis.
type SongResult struct {
	Artist   string
	Title    string
	Lyrics   lyrics.Result
	Analysis *analysis.Result // nil unless lyrics were found
}

// Message is the user-facing explanation when no lyrics are shown.
func (r *SongResult) Message() string {
	switch r.Lyrics.Status() {
	case lyrics.StatusNotFound:
		return "no lyrics found"
	case lyrics.StatusServiceError:
		return "lyrics service unavailable: " + r.Lyrics.Detail()
	default:
		return ""
	}
}

// Song fetches a song's lyrics and analyzes them. It never fails; lookup
// problems are described by the result.
func (e *Explorer) Song(ctx context.Context, artist, title string) *SongResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result := &SongResult{
		Artist: artist,
		Title:  title,
		Lyrics: e.lyrics.Resolve(ctx, artist, title),
	}

	if result.Lyrics.Status() == lyrics.StatusFound {
		a := e.analyzer.Analyze(result.Lyrics.Text())
		result.Analysis = &a
	}

	e.logger.Debug().
		Str("artist", artist).
		Str("title", title).
		Stringer("lyrics", result.Lyrics.Status()).
		Msg("Resolved song")

	return result
}
