package music

import "context"

// MaxSearchResults bounds a single search; callers narrow the filter to
// see more.
const MaxSearchResults = 100

// SearchFilter selects songs from the catalog. Keywords match against
// title, artist and lyrics; date bounds are inclusive on both ends.
type SearchFilter struct {
	Keywords        []string `json:"keywords,omitempty"`
	Link            string   `json:"link,omitempty"`
	ReleaseDateFrom string   `json:"release_date_from,omitempty"`
	ReleaseDateTo   string   `json:"release_date_to,omitempty"`
}

// SongUpdate carries the mutable fields of a partial update. Nil fields
// are left untouched.
type SongUpdate struct {
	Title  *string  `json:"title,omitempty"`
	Artist *string  `json:"artist,omitempty"`
	Lyrics []string `json:"lyrics,omitempty"`
}

// Catalog is the persistence interface for songs. It owns identity
// assignment and the title/artist uniqueness constraint.
type Catalog interface {
	// Exists reports whether a song with the exact title and artist is
	// already cataloged. No normalization is applied.
	Exists(ctx context.Context, title, artist string) (bool, error)
	// AddSong persists a new song, assigns its ID and returns it.
	// Returns ErrSongExists when the title/artist pair is taken.
	AddSong(ctx context.Context, song *Song) (string, error)
	// GetSong returns the song or nil when absent.
	GetSong(ctx context.Context, id string) (*Song, error)
	// UpdateSong applies the partial update and reports whether the song
	// existed.
	UpdateSong(ctx context.Context, id string, update SongUpdate) (bool, error)
	// DeleteSong removes the song and reports whether it existed.
	DeleteSong(ctx context.Context, id string) (bool, error)
	// SearchSongs returns at most MaxSearchResults songs matching the
	// filter, most relevant first when keywords are present.
	SearchSongs(ctx context.Context, filter SearchFilter) ([]*Song, error)
}
