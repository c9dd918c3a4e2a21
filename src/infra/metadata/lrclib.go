package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contre95/songlib/src/features/enriching"
)

// LRCLib API response structure
type lrclibSong struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Artist       string  `json:"artistName"`
	Album        string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLibProvider supplies line-timed lyrics. When it has anything, its
// lyrics replace whatever the primary provider returned.
type LRCLibProvider struct {
	enabled bool
	baseURL string
	client  *http.Client
}

// NewLRCLibProvider creates a new LRCLib provider
func NewLRCLibProvider(enabled bool, baseURL string) *LRCLibProvider {
	return &LRCLibProvider{
		enabled: enabled,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *LRCLibProvider) Lookup(ctx context.Context, title, artist string) (*enriching.ProviderResult, error) {
	params := url.Values{}
	params.Set("track_name", title)
	params.Set("artist_name", artist)
	getURL := fmt.Sprintf("%s/api/get?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", getURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Songlib/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	// LRCLib answers 404 for unknown tracks
	if resp.StatusCode == http.StatusNotFound {
		return &enriching.ProviderResult{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LRCLib API request failed with status %d", resp.StatusCode)
	}

	var song lrclibSong
	if err := json.NewDecoder(resp.Body).Decode(&song); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if song.SyncedLyrics == "" && song.PlainLyrics == "" {
		return &enriching.ProviderResult{Found: false}, nil
	}

	return &enriching.ProviderResult{
		Found:        true,
		SyncedLyrics: song.SyncedLyrics,
		PlainLyrics:  song.PlainLyrics,
	}, nil
}

func (p *LRCLibProvider) Name() string    { return "lrclib" }
func (p *LRCLibProvider) IsEnabled() bool { return p.enabled }
