package enriching

import (
	"context"
	"strings"
	"unicode"
)

// ProviderResult is the normalized partial record a provider returns for
// one lookup. Fields are independently optional; Found is false when the
// provider has no match or its call degraded.
type ProviderResult struct {
	Found        bool
	ReleaseDate  string
	Link         string
	Lyrics       []string
	SyncedLyrics string
	PlainLyrics  string
	ExternalID   string
}

// Provider defines the interface for looking up song metadata in an
// external service.
type Provider interface {
	// Lookup searches the provider for an exact title/artist match.
	// Any returned error means "no data from this provider"; callers
	// degrade, they never retry.
	Lookup(ctx context.Context, title, artist string) (*ProviderResult, error)

	// Name returns the provider name
	Name() string

	// IsEnabled returns whether the provider is enabled
	IsEnabled() bool
}

// Normalize lowercases a string and strips everything that is not a
// letter or digit, so "Hey, Jude!" and "hey jude" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
