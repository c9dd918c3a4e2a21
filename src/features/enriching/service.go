package enriching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/contre95/songlib/src/features/metrics"
	"github.com/contre95/songlib/src/music"
)

// Service is the enrichment engine. It merges the partial records of the
// three providers into one song document:
//
//   - the primary lyrics provider decides whether the song exists at all
//     and seeds release date, link and lyrics;
//   - the lyrics-sync provider overwrites lyrics when it has any, synced
//     before plain;
//   - the metadata provider only fills fields the document is still
//     missing, plus its own external ID.
type Service struct {
	primary  Provider
	syncProv Provider
	metaProv Provider
	cache    Cache
}

// NewService creates a new enrichment service. A nil cache disables
// caching.
func NewService(primary, syncProv, metaProv Provider, cache Cache) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		primary:  primary,
		syncProv: syncProv,
		metaProv: metaProv,
		cache:    cache,
	}
}

// Enrich builds the enriched document for a title/artist pair. Returns
// music.ErrSongNotFound when the primary provider has no exact match;
// sync and metadata provider failures are absorbed.
func (s *Service) Enrich(ctx context.Context, title, artist string) (*music.Song, error) {
	key := Normalize(title) + "|" + Normalize(artist)
	if cached, ok := s.cache.Get(key); ok {
		slog.Debug("Enrichment cache hit", "title", title, "artist", artist)
		return copySong(cached), nil
	}

	primaryRes := s.lookup(ctx, s.primary, title, artist)
	if primaryRes == nil || !primaryRes.Found {
		return nil, fmt.Errorf("song %q by %q: %w", title, artist, music.ErrSongNotFound)
	}

	song := &music.Song{
		Title:       title,
		Artist:      artist,
		ReleaseDate: primaryRes.ReleaseDate,
		Link:        primaryRes.Link,
		Lyrics:      music.VersesFromLines(primaryRes.Lyrics),
	}

	// The sync and metadata lookups are independent once the song is
	// known to exist, so they go out in parallel. Merge precedence is
	// still applied sequentially below.
	var wg sync.WaitGroup
	var syncRes, metaRes *ProviderResult
	wg.Add(2)
	go func() {
		defer wg.Done()
		syncRes = s.lookup(ctx, s.syncProv, title, artist)
	}()
	go func() {
		defer wg.Done()
		metaRes = s.lookup(ctx, s.metaProv, title, artist)
	}()
	wg.Wait()

	applySyncOverlay(song, syncRes)
	applyMetadataFill(song, metaRes)

	s.cache.Set(key, copySong(song))
	slog.Debug("Enrichment completed", "title", title, "artist", artist,
		"verses", len(song.Lyrics), "releaseDate", song.ReleaseDate, "externalID", song.ExternalID)
	return song, nil
}

// lookup calls one provider and folds every failure into a nil result so
// one provider's outage cannot block enrichment. No retries.
func (s *Service) lookup(ctx context.Context, provider Provider, title, artist string) *ProviderResult {
	if provider == nil || !provider.IsEnabled() {
		return nil
	}
	res, err := provider.Lookup(ctx, title, artist)
	if err != nil {
		slog.Warn("Provider lookup degraded", "provider", provider.Name(), "title", title, "artist", artist, "error", err.Error())
		metrics.ProviderLookups.WithLabelValues(provider.Name(), metrics.OutcomeDegraded).Inc()
		return nil
	}
	if res == nil || !res.Found {
		metrics.ProviderLookups.WithLabelValues(provider.Name(), metrics.OutcomeMiss).Inc()
		return nil
	}
	metrics.ProviderLookups.WithLabelValues(provider.Name(), metrics.OutcomeHit).Inc()
	return res
}

// applySyncOverlay replaces the lyrics with the sync provider's, synced
// lines first. Whatever the primary provider supplied is overwritten;
// an empty sync result leaves it untouched.
func applySyncOverlay(song *music.Song, res *ProviderResult) {
	if res == nil {
		return
	}
	switch {
	case res.SyncedLyrics != "":
		song.Lyrics = music.VersesFromLines(strings.Split(res.SyncedLyrics, "\n"))
	case res.PlainLyrics != "":
		song.Lyrics = music.VersesFromLines(strings.Split(res.PlainLyrics, "\n"))
	}
}

// applyMetadataFill fills release date and link only when still absent.
// The provider's own ID is always attached.
func applyMetadataFill(song *music.Song, res *ProviderResult) {
	if res == nil {
		return
	}
	if song.ReleaseDate == "" && res.ReleaseDate != "" {
		song.ReleaseDate = res.ReleaseDate
	}
	if song.Link == "" && res.Link != "" {
		song.Link = res.Link
	}
	if res.ExternalID != "" {
		song.ExternalID = res.ExternalID
	}
}

func copySong(song *music.Song) *music.Song {
	cp := *song
	if song.Lyrics != nil {
		cp.Lyrics = make([]music.Verse, len(song.Lyrics))
		copy(cp.Lyrics, song.Lyrics)
	}
	return &cp
}
