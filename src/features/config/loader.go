package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration. Provider
// secrets are taken from the environment (a .env file is honored).
func Load(path string) (*Manager, error) {
	// Secrets live in the environment, not in the YAML file
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		manager := NewManager(defaultCfg)
		if err := manager.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		applyEnvOverrides(defaultCfg)

		slog.Info("Default configuration created successfully", "path", path)
		return manager, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	applyEnvOverrides(&cfg)

	return NewManager(&cfg), nil
}

// applyEnvOverrides replaces provider credentials with environment values
// when set.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GENIUS_TOKEN"); token != "" {
		cfg.Providers.Genius.Token = token
	}
	if id := os.Getenv("SPOTIFY_CLIENT_ID"); id != "" {
		cfg.Providers.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_CLIENT_SECRET"); secret != "" {
		cfg.Providers.Spotify.ClientSecret = secret
	}
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Server: Server{
			PrintRoutes: false,
			Port:        3636,
		},
		Database: Database{
			Path: "./songlib.db",
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Providers: Providers{
			Genius: Genius{
				Enabled: true,
				URL:     "https://api.genius.com",
			},
			LRCLib: LRCLib{
				Enabled: true,
				URL:     "https://lrclib.net",
			},
			Spotify: Spotify{
				Enabled:   true,
				TokenURL:  "https://accounts.spotify.com/api/token",
				SearchURL: "https://api.spotify.com/v1/search",
			},
		},
		Cache: Cache{
			Enabled: true,
		},
	}
}
