package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contre95/songlib/src/features/metrics"
	"github.com/contre95/songlib/src/music"
)

// Enricher builds the enriched document for a new song. The service
// depends only on this interface so tests can substitute the engine.
type Enricher interface {
	Enrich(ctx context.Context, title, artist string) (*music.Song, error)
}

// Service is the domain service for the catalog feature. Creation goes
// through the enrichment engine; everything else is delegated to the
// catalog store.
type Service struct {
	catalog  music.Catalog
	enricher Enricher
}

// NewService creates a new catalog service.
func NewService(catalog music.Catalog, enricher Enricher) *Service {
	return &Service{
		catalog:  catalog,
		enricher: enricher,
	}
}

// Create enriches and persists a new song. Returns music.ErrSongExists
// when the exact title/artist pair is already cataloged and
// music.ErrSongNotFound when no provider knows the song.
func (s *Service) Create(ctx context.Context, title, artist string) (*music.Song, error) {
	slog.Debug("Create service called", "title", title, "artist", artist)

	exists, err := s.catalog.Exists(ctx, title, artist)
	if err != nil {
		slog.Error("Create duplicate check failed", "title", title, "artist", artist, "error", err)
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("song %q by %q: %w", title, artist, music.ErrSongExists)
	}

	song, err := s.enricher.Enrich(ctx, title, artist)
	if err != nil {
		return nil, err
	}

	if _, err := s.catalog.AddSong(ctx, song); err != nil {
		slog.Error("Create persist failed", "title", title, "artist", artist, "error", err)
		return nil, err
	}

	metrics.SongsCreated.Inc()
	slog.Info("Song added to catalog", "id", song.ID, "title", title, "artist", artist)
	return song, nil
}

// Get returns a song by ID. When page and size are positive, the verse
// list is sliced to that window; nothing fancier than slicing.
func (s *Service) Get(ctx context.Context, id string, page, size int) (*music.Song, error) {
	slog.Debug("Get service called", "id", id)
	song, err := s.catalog.GetSong(ctx, id)
	if err != nil {
		slog.Error("Get failed", "id", id, "error", err)
		return nil, err
	}
	if song == nil {
		return nil, fmt.Errorf("song id %q: %w", id, music.ErrSongNotFound)
	}

	if page > 0 && size > 0 {
		start := (page - 1) * size
		end := start + size
		switch {
		case start >= len(song.Lyrics):
			song.Lyrics = nil
		case end > len(song.Lyrics):
			song.Lyrics = song.Lyrics[start:]
		default:
			song.Lyrics = song.Lyrics[start:end]
		}
	}
	return song, nil
}

// Update applies a partial update and returns the updated song.
func (s *Service) Update(ctx context.Context, id string, update music.SongUpdate) (*music.Song, error) {
	slog.Debug("Update service called", "id", id)
	ok, err := s.catalog.UpdateSong(ctx, id, update)
	if err != nil {
		slog.Error("Update failed", "id", id, "error", err)
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("song id %q: %w", id, music.ErrSongNotFound)
	}

	song, err := s.catalog.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, fmt.Errorf("song id %q: %w", id, music.ErrSongNotFound)
	}
	return song, nil
}

// Delete removes a song by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	slog.Debug("Delete service called", "id", id)
	ok, err := s.catalog.DeleteSong(ctx, id)
	if err != nil {
		slog.Error("Delete failed", "id", id, "error", err)
		return err
	}
	if !ok {
		return fmt.Errorf("song id %q: %w", id, music.ErrSongNotFound)
	}
	metrics.SongsDeleted.Inc()
	slog.Info("Song deleted from catalog", "id", id)
	return nil
}

// Search returns songs matching the filter, passthrough to the store.
func (s *Service) Search(ctx context.Context, filter music.SearchFilter) ([]*music.Song, error) {
	slog.Debug("Search service called", "keywords", filter.Keywords, "link", filter.Link)
	songs, err := s.catalog.SearchSongs(ctx, filter)
	if err != nil {
		slog.Error("Search failed", "error", err)
		return nil, err
	}
	metrics.Searches.Inc()
	slog.Debug("Search completed", "count", len(songs))
	return songs, nil
}
