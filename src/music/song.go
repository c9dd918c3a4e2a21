package music

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSongNotFound is returned when a song is not in the catalog or no
// provider knows the requested title/artist pair.
var ErrSongNotFound = errors.New("song not found")

// ErrSongExists is returned when a title/artist pair is already cataloged.
var ErrSongExists = errors.New("song already exists")

// Song is a cataloged song enriched with provider metadata.
type Song struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	Link         string    `json:"link,omitempty"`
	ExternalID   string    `json:"external_id,omitempty"`
	Lyrics       []Verse   `json:"lyrics,omitempty"`
	AddedDate    time.Time `json:"added_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

// Verse is a single line of lyrics with its position in the song.
type Verse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Validate validates the song fields.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title cannot be empty")
	}
	if len(s.Title) > 500 {
		return fmt.Errorf("title cannot exceed 500 characters, got %d: title -> %s", len(s.Title), s.Title)
	}
	if strings.TrimSpace(s.Artist) == "" {
		return fmt.Errorf("song artist cannot be empty")
	}
	if len(s.Artist) > 500 {
		return fmt.Errorf("artist cannot exceed 500 characters, got %d: artist -> %s", len(s.Artist), s.Artist)
	}
	if s.Link != "" && len(s.Link) > 1000 {
		return fmt.Errorf("link cannot exceed 1000 characters, got %d", len(s.Link))
	}
	return nil
}

// VersesFromLines builds an ordered verse list from plain lyrics lines.
func VersesFromLines(lines []string) []Verse {
	if len(lines) == 0 {
		return nil
	}
	verses := make([]Verse, len(lines))
	for i, line := range lines {
		verses[i] = Verse{Index: i, Text: line}
	}
	return verses
}

// LyricsText joins the verse list back into a newline-delimited blob.
func (s *Song) LyricsText() string {
	if len(s.Lyrics) == 0 {
		return ""
	}
	lines := make([]string, len(s.Lyrics))
	for i, verse := range s.Lyrics {
		lines[i] = verse.Text
	}
	return strings.Join(lines, "\n")
}
