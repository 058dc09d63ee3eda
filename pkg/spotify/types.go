package spotify

// Album groups accepted by the include_groups filter.
const (
	GroupAlbum       = "album"
	GroupSingle      = "single"
	GroupAppearsOn   = "appears_on"
	GroupCompilation = "compilation"
)

// Artist is a simplified artist object.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

// Album is a simplified album object as returned by the artist albums endpoint.
type Album struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	AlbumType            string            `json:"album_type"`
	AlbumGroup           string            `json:"album_group"`
	ReleaseDate          string            `json:"release_date"`
	ReleaseDatePrecision string            `json:"release_date_precision"`
	TotalTracks          int               `json:"total_tracks"`
	Artists              []Artist          `json:"artists"`
	ExternalURLs         map[string]string `json:"external_urls"`
}

// Track is a simplified track object as returned by the album tracks endpoint.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DiscNumber  int    `json:"disc_number"`
	DurationMs  int    `json:"duration_ms"`
	Explicit    bool   `json:"explicit"`
}

type artistPage struct {
	Items []Artist `json:"items"`
	Next  string   `json:"next"`
	Total int      `json:"total"`
}

type albumPage struct {
	Items []Album `json:"items"`
	Next  string  `json:"next"`
	Total int     `json:"total"`
}

type trackPage struct {
	Items []Track `json:"items"`
	Next  string  `json:"next"`
	Total int     `json:"total"`
}
