package catalog

import (
	"errors"
	"log/slog"

	"github.com/contre95/songlib/src/music"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the catalog feature.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new handler for the catalog feature.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

type createSongRequest struct {
	Title  string `json:"title" validate:"required"`
	Artist string `json:"artist" validate:"required"`
}

// CreateSong adds a new song, enriched with provider metadata.
func (h *Handler) CreateSong(c *fiber.Ctx) error {
	var req createSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	song, err := h.service.Create(c.Context(), req.Title, req.Artist)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(song)
}

// GetSong returns a song by ID. Lyrics can be sliced with the page and
// size query parameters.
func (h *Handler) GetSong(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 0)

	song, err := h.service.Get(c.Context(), c.Params("id"), page, size)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(song)
}

// UpdateSong applies a partial update and returns the updated song.
func (h *Handler) UpdateSong(c *fiber.Ctx) error {
	var update music.SongUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	song, err := h.service.Update(c.Context(), c.Params("id"), update)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(song)
}

// DeleteSong removes a song by ID.
func (h *Handler) DeleteSong(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "song " + id + " deleted successfully"})
}

// SearchSongs returns songs matching the filter in the request body.
func (h *Handler) SearchSongs(c *fiber.Ctx) error {
	var filter music.SearchFilter
	if err := c.BodyParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	songs, err := h.service.Search(c.Context(), filter)
	if err != nil {
		return h.errorResponse(c, err)
	}
	if songs == nil {
		songs = []*music.Song{}
	}
	return c.JSON(songs)
}

// errorResponse maps domain errors to HTTP status codes. The error text
// already carries the offending key (id or title/artist).
func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, music.ErrSongExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, music.ErrSongNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("Internal error serving catalog request", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
