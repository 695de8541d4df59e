package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"medrec/internal/models"
)

// jsonError writes body with the given HTTP status code, stamping the
// current time when body has none.
func jsonError(c fiber.Ctx, status int, body models.ErrorResponse) error {
	if body.Timestamp.IsZero() {
		body.Timestamp = time.Now()
	}
	return c.Status(status).JSON(body)
}

// NotFound answers every route that no other handler matched.
func NotFound(c fiber.Ctx) error {
	return jsonError(c, fiber.StatusNotFound, models.ErrorResponse{Error: "Route not found"})
}
