package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/contre95/songlib/src/features/catalog"
	"github.com/contre95/songlib/src/features/config"
	"github.com/contre95/songlib/src/features/enriching"
	"github.com/contre95/songlib/src/features/hosting"
	"github.com/contre95/songlib/src/features/logging"
	"github.com/contre95/songlib/src/infra/cache"
	"github.com/contre95/songlib/src/infra/database"
	"github.com/contre95/songlib/src/infra/metadata"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Reload configuration on file changes
	stopWatch, err := cfgManager.Watch("config.yaml")
	if err != nil {
		slog.Warn("Config watcher disabled", "error", err)
	} else {
		defer stopWatch()
	}

	cfg := cfgManager.Get()

	// Create the catalog store
	db, err := database.NewSqliteCatalog(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to create catalog store: %v", err)
	}

	// Create the metadata providers
	geniusProvider := metadata.NewGeniusProvider(cfg.Providers.Genius.Enabled, cfg.Providers.Genius.URL, cfg.Providers.Genius.Token)
	lrclibProvider := metadata.NewLRCLibProvider(cfg.Providers.LRCLib.Enabled, cfg.Providers.LRCLib.URL)
	spotifyProvider := metadata.NewSpotifyProvider(cfg.Providers.Spotify.Enabled, cfg.Providers.Spotify.TokenURL,
		cfg.Providers.Spotify.SearchURL, cfg.Providers.Spotify.ClientID, cfg.Providers.Spotify.ClientSecret)

	// Create the enrichment engine
	var enrichCache enriching.Cache
	if cfg.Cache.Enabled {
		enrichCache = cache.NewInMemoryCache()
	}
	enrichingService := enriching.NewService(geniusProvider, lrclibProvider, spotifyProvider, enrichCache)

	// Create the catalog service
	catalogService := catalog.NewService(db, enrichingService)

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, catalogService)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
