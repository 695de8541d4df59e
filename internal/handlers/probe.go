package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"medrec/internal/recommend"
)

const readinessTimeout = 5 * time.Second

// probeStatus is the body of both probe endpoints.
type probeStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ProbeHandler serves /healthz and /readyz for orchestrators.
type ProbeHandler struct {
	pinger recommend.Pinger
}

// NewProbeHandler creates a probe handler. pinger is nil when predictions
// run in process, in which case the gateway is always ready.
func NewProbeHandler(pinger recommend.Pinger) *ProbeHandler {
	return &ProbeHandler{pinger: pinger}
}

// Liveness answers as long as the process can serve HTTP at all.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(probeStatus{Status: "ok"})
}

// Readiness fails with 503 while the remote scorer does not answer its
// health check.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.pinger == nil {
		return c.JSON(probeStatus{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(probeStatus{
			Status: "error",
			Error:  "scoring service unavailable",
		})
	}
	return c.JSON(probeStatus{Status: "ok"})
}
