package cache

import (
	"sync"

	"github.com/contre95/songlib/src/features/enriching"
	"github.com/contre95/songlib/src/music"
)

// InMemoryCache is an in-memory implementation of the enrichment Cache
// interface. Entries live for the lifetime of the process.
type InMemoryCache struct {
	items sync.Map // map[string]*music.Song
}

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() enriching.Cache {
	return &InMemoryCache{}
}

// Get returns the cached song for a key.
func (c *InMemoryCache) Get(key string) (*music.Song, bool) {
	if value, ok := c.items.Load(key); ok {
		if song, ok := value.(*music.Song); ok {
			return song, true
		}
	}
	return nil, false
}

// Set stores a song under a key, replacing any previous entry.
func (c *InMemoryCache) Set(key string, song *music.Song) {
	c.items.Store(key, song)
}
