package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/contre95/songlib/src/features/enriching"
)

// Spotify API response structures
type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyTrack struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Album struct {
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// SpotifyProvider supplies supplementary metadata. Its fields only fill
// gaps in the enriched document, except for the track ID which is always
// attached as the external ID.
type SpotifyProvider struct {
	enabled      bool
	tokenURL     string
	searchURL    string
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyProvider creates a new Spotify provider. The access token is
// acquired lazily on first use and cached per instance until it expires.
func NewSpotifyProvider(enabled bool, tokenURL, searchURL, clientID, clientSecret string) *SpotifyProvider {
	return &SpotifyProvider{
		enabled:      enabled,
		tokenURL:     tokenURL,
		searchURL:    searchURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// authenticate obtains an access token via the client-credentials flow.
func (p *SpotifyProvider) authenticate(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	if p.clientID == "" || p.clientSecret == "" {
		return "", fmt.Errorf("Spotify client ID or secret not set")
	}

	authString := base64.StdEncoding.EncodeToString([]byte(p.clientID + ":" + p.clientSecret))

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", p.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+authString)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Spotify auth failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}

	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return p.accessToken, nil
}

func (p *SpotifyProvider) Lookup(ctx context.Context, title, artist string) (*enriching.ProviderResult, error) {
	token, err := p.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("track:%s artist:%s", title, artist))
	params.Set("type", "track")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", p.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "Songlib/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Spotify API request failed with status %d", resp.StatusCode)
	}

	var searchResp spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Tracks.Items) == 0 {
		return &enriching.ProviderResult{Found: false}, nil
	}

	track := searchResp.Tracks.Items[0]
	return &enriching.ProviderResult{
		Found:       true,
		ReleaseDate: track.Album.ReleaseDate,
		Link:        track.ExternalURLs.Spotify,
		ExternalID:  track.ID,
	}, nil
}

func (p *SpotifyProvider) Name() string    { return "spotify" }
func (p *SpotifyProvider) IsEnabled() bool { return p.enabled }
