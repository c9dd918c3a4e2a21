package enriching

import "github.com/contre95/songlib/src/music"

// Cache is an optional backend for enrichment results, keyed by the
// normalized title/artist pair. The engine works against this interface
// so a real backend (Redis, etc.) can be swapped in later.
type Cache interface {
	Get(key string) (*music.Song, bool)
	Set(key string, song *music.Song)
}

// NopCache is the default cache: it never stores anything.
type NopCache struct{}

func (NopCache) Get(key string) (*music.Song, bool) { return nil, false }
func (NopCache) Set(key string, song *music.Song)   {}
