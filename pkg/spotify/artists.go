package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pageLimit is the largest page size the paging endpoints accept.
const pageLimit = 50

// maxPages bounds how many "next" links are followed for one listing.
const maxPages = 20

// ArtistService provides artist operations for the Spotify API.
type ArtistService struct {
	client *Client
}

// Search finds artists by name, best match first.
//
// Returns ErrArtistNotFound if the search yields no artists.
//
// Example:
//
//	artists, err := client.Artists().Search(ctx, "Michael Jackson", 1)
//	if errors.Is(err, spotify.ErrArtistNotFound) {
//	    fmt.Println("No such artist")
//	}
func (s *ArtistService) Search(ctx context.Context, name string, limit int) ([]Artist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("spotify: artist name is required")
	}
	if limit <= 0 || limit > pageLimit {
		limit = 1
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))
	if s.client.market != "" {
		query.Set("market", s.client.market)
	}

	var body struct {
		Artists artistPage `json:"artists"`
	}
	if err := s.client.get(ctx, s.client.endpoint("search", query), &body); err != nil {
		return nil, fmt.Errorf("spotify: artist search failed: %w", err)
	}

	if len(body.Artists.Items) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrArtistNotFound, name)
	}

	return body.Artists.Items, nil
}

// Albums lists an artist's releases restricted to the given album groups,
// following pagination until the listing is exhausted. With no groups the
// listing is restricted to GroupAlbum.
func (s *ArtistService) Albums(ctx context.Context, artistID string, groups ...string) ([]Album, error) {
	if artistID == "" {
		return nil, fmt.Errorf("spotify: artist id is required")
	}
	if len(groups) == 0 {
		groups = []string{GroupAlbum}
	}

	query := url.Values{}
	query.Set("include_groups", strings.Join(groups, ","))
	query.Set("limit", strconv.Itoa(pageLimit))
	if s.client.market != "" {
		query.Set("market", s.client.market)
	}

	next := s.client.endpoint("artists/"+url.PathEscape(artistID)+"/albums", query)
	var albums []Album
	for page := 0; next != "" && page < maxPages; page++ {
		var body albumPage
		if err := s.client.get(ctx, next, &body); err != nil {
			return nil, fmt.Errorf("spotify: failed to list albums for artist %s: %w", artistID, err)
		}
		albums = append(albums, body.Items...)

		if next, _ = s.client.nextPage(body.Next); next == "" {
			break
		}
	}

	return albums, nil
}

// nextPage validates a pagination link. Links pointing outside the
// configured API base are not followed.
func (c *Client) nextPage(next string) (string, bool) {
	if next == "" {
		return "", false
	}
	if !strings.HasPrefix(next, c.baseURL+"/") {
		c.logDebugf("spotify: ignoring pagination link outside %s: %s", c.baseURL, next)
		return "", false
	}
	return next, true
}
