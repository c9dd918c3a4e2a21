package enriching

import (
	"context"
	"errors"
	"testing"

	"github.com/contre95/songlib/src/music"
)

// mockProvider is a mock implementation of Provider
type mockProvider struct {
	name    string
	enabled bool
	res     *ProviderResult
	err     error
	calls   int
}

func (m *mockProvider) Lookup(ctx context.Context, title, artist string) (*ProviderResult, error) {
	m.calls++
	return m.res, m.err
}

func (m *mockProvider) Name() string    { return m.name }
func (m *mockProvider) IsEnabled() bool { return m.enabled }

func primaryWith(res *ProviderResult) *mockProvider {
	return &mockProvider{name: "genius", enabled: true, res: res}
}

func imaginePrimary() *mockProvider {
	return primaryWith(&ProviderResult{
		Found:       true,
		ReleaseDate: "1971-10-11",
		Link:        "L1",
		Lyrics:      []string{"a", "b"},
	})
}

func verseTexts(verses []music.Verse) []string {
	texts := make([]string, len(verses))
	for i, v := range verses {
		texts[i] = v.Text
	}
	return texts
}

func equalLines(got []music.Verse, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, v := range got {
		if v.Text != want[i] || v.Index != i {
			return false
		}
	}
	return true
}

func TestEnrich_PrimaryNotFound_FailsWithNotFound(t *testing.T) {
	primary := primaryWith(&ProviderResult{Found: false})
	syncProv := &mockProvider{name: "lrclib", enabled: true}
	metaProv := &mockProvider{name: "spotify", enabled: true}
	service := NewService(primary, syncProv, metaProv, nil)

	_, err := service.Enrich(context.Background(), "No Such Song", "Nobody")
	if !errors.Is(err, music.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
	if syncProv.calls != 0 || metaProv.calls != 0 {
		t.Error("overlay providers should not be called when the primary has no match")
	}
}

func TestEnrich_PrimaryDegraded_FailsWithNotFound(t *testing.T) {
	primary := &mockProvider{name: "genius", enabled: true, err: errors.New("connection refused")}
	service := NewService(primary, &mockProvider{name: "lrclib", enabled: true}, &mockProvider{name: "spotify", enabled: true}, nil)

	_, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if !errors.Is(err, music.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestEnrich_SyncedLyricsOverridePrimary(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: true, res: &ProviderResult{
		Found:        true,
		SyncedLyrics: "x\ny\nz",
		PlainLyrics:  "should not be used",
	}}
	service := NewService(imaginePrimary(), syncProv, &mockProvider{name: "spotify", enabled: true}, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !equalLines(song.Lyrics, []string{"x", "y", "z"}) {
		t.Errorf("expected synced lines, got %v", verseTexts(song.Lyrics))
	}
}

func TestEnrich_PlainLyricsUsedWhenNoSynced(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: true, res: &ProviderResult{
		Found:       true,
		PlainLyrics: "p\nq",
	}}
	service := NewService(imaginePrimary(), syncProv, &mockProvider{name: "spotify", enabled: true}, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !equalLines(song.Lyrics, []string{"p", "q"}) {
		t.Errorf("expected plain lines, got %v", verseTexts(song.Lyrics))
	}
}

func TestEnrich_EmptySyncResult_KeepsPrimaryLyrics(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: true, res: &ProviderResult{Found: false}}
	service := NewService(imaginePrimary(), syncProv, &mockProvider{name: "spotify", enabled: true}, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !equalLines(song.Lyrics, []string{"a", "b"}) {
		t.Errorf("expected primary lyrics untouched, got %v", verseTexts(song.Lyrics))
	}
}

func TestEnrich_MetadataNeverOverwrites(t *testing.T) {
	metaProv := &mockProvider{name: "spotify", enabled: true, res: &ProviderResult{
		Found:       true,
		ReleaseDate: "1999-01-01",
		Link:        "L2",
		ExternalID:  "sp123",
	}}
	service := NewService(imaginePrimary(), &mockProvider{name: "lrclib", enabled: true}, metaProv, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if song.ReleaseDate != "1971-10-11" {
		t.Errorf("metadata overwrote release date: %s", song.ReleaseDate)
	}
	if song.Link != "L1" {
		t.Errorf("metadata overwrote link: %s", song.Link)
	}
	if song.ExternalID != "sp123" {
		t.Errorf("external ID should always be attached, got %q", song.ExternalID)
	}
}

func TestEnrich_MetadataFillsMissingFields(t *testing.T) {
	primary := primaryWith(&ProviderResult{Found: true, Lyrics: []string{"a"}})
	metaProv := &mockProvider{name: "spotify", enabled: true, res: &ProviderResult{
		Found:       true,
		ReleaseDate: "1971-10-11",
		Link:        "L2",
	}}
	service := NewService(primary, &mockProvider{name: "lrclib", enabled: true}, metaProv, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if song.ReleaseDate != "1971-10-11" {
		t.Errorf("expected filled release date, got %q", song.ReleaseDate)
	}
	if song.Link != "L2" {
		t.Errorf("expected filled link, got %q", song.Link)
	}
}

func TestEnrich_ImagineScenario(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: true, res: &ProviderResult{
		Found:        true,
		SyncedLyrics: "x\ny\nz",
	}}
	metaProv := &mockProvider{name: "spotify", enabled: true, res: &ProviderResult{
		Found:       true,
		ReleaseDate: "1971-10-11",
		Link:        "L2",
		ExternalID:  "sp123",
	}}
	service := NewService(imaginePrimary(), syncProv, metaProv, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !equalLines(song.Lyrics, []string{"x", "y", "z"}) {
		t.Errorf("expected synced lyrics, got %v", verseTexts(song.Lyrics))
	}
	if song.ReleaseDate != "1971-10-11" {
		t.Errorf("unexpected release date %q", song.ReleaseDate)
	}
	if song.Link != "L1" {
		t.Errorf("fill-only should not touch an already present link, got %q", song.Link)
	}
	if song.ExternalID != "sp123" {
		t.Errorf("expected external ID from metadata provider, got %q", song.ExternalID)
	}
}

func TestEnrich_AllOverlaysDegraded_EqualsPrimary(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: true, err: errors.New("timeout")}
	metaProv := &mockProvider{name: "spotify", enabled: true, err: errors.New("timeout")}
	service := NewService(imaginePrimary(), syncProv, metaProv, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if song.ReleaseDate != "1971-10-11" || song.Link != "L1" || !equalLines(song.Lyrics, []string{"a", "b"}) {
		t.Errorf("expected the primary result untouched, got %+v", song)
	}
	if song.ExternalID != "" {
		t.Errorf("expected no external ID, got %q", song.ExternalID)
	}
}

func TestEnrich_DisabledOverlaysSkipped(t *testing.T) {
	syncProv := &mockProvider{name: "lrclib", enabled: false, res: &ProviderResult{Found: true, SyncedLyrics: "x"}}
	metaProv := &mockProvider{name: "spotify", enabled: false, res: &ProviderResult{Found: true, ExternalID: "sp123"}}
	service := NewService(imaginePrimary(), syncProv, metaProv, nil)

	song, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if syncProv.calls != 0 || metaProv.calls != 0 {
		t.Error("disabled providers should not be called")
	}
	if !equalLines(song.Lyrics, []string{"a", "b"}) || song.ExternalID != "" {
		t.Errorf("disabled providers should not contribute, got %+v", song)
	}
}

// mapCache is a mock cache backed by a plain map.
type mapCache struct {
	items map[string]*music.Song
}

func (c *mapCache) Get(key string) (*music.Song, bool) {
	song, ok := c.items[key]
	return song, ok
}

func (c *mapCache) Set(key string, song *music.Song) {
	c.items[key] = song
}

func TestEnrich_CacheHitSkipsProviders(t *testing.T) {
	primary := imaginePrimary()
	syncProv := &mockProvider{name: "lrclib", enabled: true}
	metaProv := &mockProvider{name: "spotify", enabled: true}
	service := NewService(primary, syncProv, metaProv, &mapCache{items: make(map[string]*music.Song)})

	first, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := service.Enrich(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("expected one primary lookup, got %d", primary.calls)
	}
	if second.Title != first.Title || !equalLines(second.Lyrics, verseTexts(first.Lyrics)) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hey, Jude!", "heyjude"},
		{"HEY JUDE", "heyjude"},
		{"R.E.M.", "rem"},
		{"Sigur Rós", "sigurrós"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
