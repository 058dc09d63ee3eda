// Package catalog lists an artist's albums and an album's tracks from the
// streaming catalog, mapped onto the discography types.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/lyricist/internal/discography"
	"github.com/jfmyers9/lyricist/pkg/spotify"
	"github.com/rs/zerolog"
)

// Client wraps the Spotify API client
type Client struct {
	client *spotify.Client
	logger zerolog.Logger
}

// New creates a catalog client backed by an authenticated Spotify client.
func New(client *spotify.Client, logger zerolog.Logger) *Client {
	return &Client{
		client: client,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// ListAlbums returns the studio-type albums of the best-matching artist in
// catalog order.
//
// Returns an error wrapping discography.ErrArtistNotFound when the search
// finds nobody.
func (c *Client) ListAlbums(ctx context.Context, artistName string) ([]discography.Album, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return nil, fmt.Errorf("artist name is required")
	}

	artists, err := c.client.Artists().Search(ctx, artistName, 1)
	if err != nil {
		if errors.Is(err, spotify.ErrArtistNotFound) {
			return nil, fmt.Errorf("%w: %s", discography.ErrArtistNotFound, artistName)
		}
		return nil, fmt.Errorf("failed to search artist: %w", err)
	}
	artist := artists[0]

	c.logger.Debug().
		Str("query", artistName).
		Str("artist", artist.Name).
		Str("artist_id", artist.ID).
		Msg("Resolved artist")

	items, err := c.client.Artists().Albums(ctx, artist.ID, spotify.GroupAlbum)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	albums := make([]discography.Album, 0, len(items))
	for _, item := range items {
		albums = append(albums, discography.Album{
			Title:       item.Name,
			ReleaseDate: item.ReleaseDate,
			ExternalID:  item.ID,
			Source:      discography.SourceCatalog,
			TotalTracks: item.TotalTracks,
		})
	}

	c.logger.Debug().Int("albums", len(albums)).Msg("Listed catalog albums")
	return albums, nil
}

// ListTracks returns an album's tracks in upstream order.
func (c *Client) ListTracks(ctx context.Context, albumID string) ([]discography.Track, error) {
	if albumID == "" {
		return nil, fmt.Errorf("album id is required")
	}

	items, err := c.client.Albums().Tracks(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	tracks := make([]discography.Track, 0, len(items))
	for _, item := range items {
		disc := item.DiscNumber
		if disc < 1 {
			disc = 1
		}
		tracks = append(tracks, discography.Track{
			Name:     item.Name,
			Position: item.TrackNumber,
			Disc:     disc,
			Duration: time.Duration(item.DurationMs) * time.Millisecond,
		})
	}

	return tracks, nil
}
