// Package reference reads an artist's studio album list from their
// Wikipedia discography article.
package reference

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/pkg/wikipedia"
	"github.com/rs/zerolog"
)

// Scraper locates and parses discography articles.
type Scraper struct {
	wiki   *wikipedia.Client
	logger zerolog.Logger
}

// New creates a Scraper.
func New(wiki *wikipedia.Client, logger zerolog.Logger) *Scraper {
	return &Scraper{
		wiki:   wiki,
		logger: logger.With().Str("component", "reference").Logger(),
	}
}

// StudioAlbums returns the studio albums listed on the artist's discography
// page, in page order with duplicate titles collapsed.
//
// A page without a studio album section yields an empty list and no error.
// A page that cannot be fetched yields an error wrapping
// discography.ErrReferenceUnavailable.
func (s *Scraper) StudioAlbums(ctx context.Context, artistName string) ([]discography.Album, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return nil, fmt.Errorf("%w: artist name is required", discography.ErrReferenceUnavailable)
	}

	title := s.pageTitle(ctx, artistName)

	doc, err := s.wiki.Page(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", discography.ErrReferenceUnavailable, err)
	}

	entries, err := wikipedia.ParseStudioAlbums(bytes.NewReader(doc.HTML), doc.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", discography.ErrReferenceUnavailable, err)
	}

	albums := make([]discography.Album, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		album := discography.Album{
			Title:  e.Title,
			Source: discography.SourceReference,
			Link:   e.Link,
		}
		key := album.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		albums = append(albums, album)
	}

	s.logger.Debug().
		Str("page", doc.URL.String()).
		Int("albums", len(albums)).
		Msg("Parsed reference discography")

	return albums, nil
}

// pageTitle finds the discography article by search, falling back to the
// conventional "<Artist> discography" title.
func (s *Scraper) pageTitle(ctx context.Context, artistName string) string {
	fallback := FallbackTitle(artistName)

	hits, err := s.wiki.Search(ctx, artistName+" discography", 1)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("fallback", fallback).Msg("Discography search failed")
		return fallback
	case len(hits) == 0:
		s.logger.Debug().Str("fallback", fallback).Msg("Discography search returned nothing")
		return fallback
	}

	return hits[0].Title
}

// FallbackTitle derives the article title from the artist name, capitalizing
// each word as article titles of artists usually are.
func FallbackTitle(artistName string) string {
	words := strings.Fields(artistName)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(append(words, "discography"), "_")
}
