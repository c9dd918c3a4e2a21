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

// Genius API response structures
type geniusSearchResponse struct {
	Response struct {
		Hits []geniusHit `json:"hits"`
	} `json:"response"`
}

type geniusHit struct {
	Result geniusSong `json:"result"`
}

type geniusSong struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ReleaseDate   string `json:"release_date"`
	URL           string `json:"url"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// GeniusProvider is the primary lyrics provider. It is the authority on
// whether a song exists: a hit counts only when both the normalized
// title and the normalized primary artist match the query exactly.
type GeniusProvider struct {
	enabled bool
	baseURL string
	token   string
	client  *http.Client
}

// NewGeniusProvider creates a new Genius provider
func NewGeniusProvider(enabled bool, baseURL, token string) *GeniusProvider {
	return &GeniusProvider{
		enabled: enabled,
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GeniusProvider) Lookup(ctx context.Context, title, artist string) (*enriching.ProviderResult, error) {
	query := title + " " + artist
	searchURL := fmt.Sprintf("%s/search?q=%s", p.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("User-Agent", "Songlib/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Genius API request failed with status %d", resp.StatusCode)
	}

	var searchResp geniusSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	normTitle := enriching.Normalize(title)
	normArtist := enriching.Normalize(artist)

	for _, hit := range searchResp.Response.Hits {
		if enriching.Normalize(hit.Result.Title) != normTitle {
			continue
		}
		if enriching.Normalize(hit.Result.PrimaryArtist.Name) != normArtist {
			continue
		}
		return &enriching.ProviderResult{
			Found:       true,
			ReleaseDate: hit.Result.ReleaseDate,
			Link:        hit.Result.URL,
		}, nil
	}

	// A near miss is still a miss, never accept a best guess
	return &enriching.ProviderResult{Found: false}, nil
}

func (p *GeniusProvider) Name() string    { return "genius" }
func (p *GeniusProvider) IsEnabled() bool { return p.enabled }
