package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the config feature.
func RegisterRoutes(app *fiber.App, manager *Manager) {
	app.Get("/config", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "application/json")
		return c.SendString(manager.GetJSON())
	})
}
