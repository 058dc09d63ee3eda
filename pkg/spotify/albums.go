package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlbumService provides album operations for the Spotify API.
type AlbumService struct {
	client *Client
}

// Tracks lists an album's tracks in the order Spotify returns them
// (disc number, then track number), following pagination.
func (s *AlbumService) Tracks(ctx context.Context, albumID string) ([]Track, error) {
	if albumID == "" {
		return nil, fmt.Errorf("spotify: album id is required")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageLimit))
	if s.client.market != "" {
		query.Set("market", s.client.market)
	}

	next := s.client.endpoint("albums/"+url.PathEscape(albumID)+"/tracks", query)
	var tracks []Track
	for page := 0; next != "" && page < maxPages; page++ {
		var body trackPage
		if err := s.client.get(ctx, next, &body); err != nil {
			return nil, fmt.Errorf("spotify: failed to list tracks for album %s: %w", albumID, err)
		}
		tracks = append(tracks, body.Items...)

		if next, _ = s.client.nextPage(body.Next); next == "" {
			break
		}
	}

	return tracks, nil
}
