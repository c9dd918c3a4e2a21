package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the catalog feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	songs := app.Group("/songs")
	songs.Post("/", handler.CreateSong)
	songs.Post("/search", handler.SearchSongs)
	songs.Get("/:id", handler.GetSong)
	songs.Patch("/:id", handler.UpdateSong)
	songs.Delete("/:id", handler.DeleteSong)
}
