package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"medrec/internal/models"
)

// HealthHandler reports gateway liveness in the public health format.
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a health handler that reports service as its name.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.service,
	})
}
