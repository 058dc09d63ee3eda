// Package discography holds the album and track types shared by the catalog
// and reference sources, and the reconciliation that merges them into a
// canonical list of studio albums.
package discography

import (
	"errors"
	"time"
)

// Source identifies where an Album listing came from
type Source int

const (
	SourceCatalog   Source = iota // Streaming catalog (Spotify)
	SourceReference               // Encyclopedia discography page (Wikipedia)
)

// String returns a human-readable representation of the Source
func (s Source) String() string {
	switch s {
	case SourceCatalog:
		return "catalog"
	case SourceReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Album is one release as listed by a single source.
//
// Two sources use different identifiers for the same work, so matching is
// done on the normalized Title and never on ExternalID.
type Album struct {
	Title       string // Display title as supplied by the source
	ReleaseDate string // Optional, catalog only (YYYY, YYYY-MM or YYYY-MM-DD)
	ExternalID  string // Source-specific identifier (catalog album id)
	Source      Source // Where this listing came from
	Link        string // Absolute URL of the album article, reference only
	TotalTracks int    // Track count reported by the catalog, 0 if unknown
}

// Key returns the normalized title used for matching.
func (a Album) Key() string {
	return NormalizeTitle(a.Title)
}

// Track is one entry in an album's track listing
type Track struct {
	Name     string        // Track title
	Position int           // 1-based track number within its disc
	Disc     int           // 1-based disc number
	Duration time.Duration // Zero if unknown
}

// Domain errors surfaced by the pipeline.
var (
	// ErrArtistNotFound means the catalog search for an artist returned nothing.
	ErrArtistNotFound = errors.New("artist not found")

	// ErrReferenceUnavailable means the reference discography could not be fetched.
	ErrReferenceUnavailable = errors.New("reference discography unavailable")

	// ErrNoStudioAlbums means reconciliation produced an empty list.
	ErrNoStudioAlbums = errors.New("no studio albums found")

	// ErrAlbumNotFound means a requested album is not in the reconciled list.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrTrackNotFound means a requested track is not on the selected album.
	ErrTrackNotFound = errors.New("track not found")
)

// FindAlbum returns the first album whose normalized title equals title.
func FindAlbum(albums []Album, title string) (Album, bool) {
	key := NormalizeTitle(title)
	for _, a := range albums {
		if a.Key() == key {
			return a, true
		}
	}
	return Album{}, false
}

// FindTrack returns the first track whose normalized name equals name.
func FindTrack(tracks []Track, name string) (Track, bool) {
	key := NormalizeTitle(name)
	for _, t := range tracks {
		if NormalizeTitle(t.Name) == key {
			return t, true
		}
	}
	return Track{}, false
}
