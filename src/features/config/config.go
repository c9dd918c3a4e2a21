package config

// Config holds the application configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Database  Database  `yaml:"database"`
	Logger    Logger    `yaml:"logger"`
	Providers Providers `yaml:"providers"`
	Cache     Cache     `yaml:"cache"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Providers holds the configuration for the external metadata providers.
type Providers struct {
	Genius  Genius  `yaml:"genius"`
	LRCLib  LRCLib  `yaml:"lrclib"`
	Spotify Spotify `yaml:"spotify"`
}

// Genius holds the configuration for the primary lyrics provider.
type Genius struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url" validate:"required"`
	Token   string `yaml:"token,omitempty"`
}

// LRCLib holds the configuration for the synced lyrics provider.
type LRCLib struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url" validate:"required"`
}

// Spotify holds the configuration for the supplementary metadata provider.
type Spotify struct {
	Enabled      bool   `yaml:"enabled"`
	TokenURL     string `yaml:"token_url" validate:"required"`
	SearchURL    string `yaml:"search_url" validate:"required"`
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
}

// Cache holds the configuration for the enrichment cache.
type Cache struct {
	Enabled bool `yaml:"enabled"`
}
