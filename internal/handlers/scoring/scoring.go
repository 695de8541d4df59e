// Package scoring serves the recommendation engine over HTTP for gateways
// running in remote mode.
package scoring

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"medrec/internal/models"
	"medrec/internal/recommend"
)

const (
	errNoSymptoms       = "No symptoms provided"
	errPredictionFailed = "Prediction failed"
	errModelInfo        = "Unable to fetch model information"
)

// Handler exposes an Engine as the scoring service.
type Handler struct {
	engine *recommend.Engine
	log    *zap.Logger
}

// NewHandler creates a scoring handler around engine.
func NewHandler(engine *recommend.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{engine: engine, log: log}
}

type predictRequest struct {
	Symptoms any `json:"symptoms"`
}

// Predict handles POST /predict.
func (h *Handler) Predict(c fiber.Ctx) error {
	var req predictRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		// Unparseable bodies carry no symptoms field.
		req.Symptoms = nil
	}

	symptoms, _ := req.Symptoms.(string)
	if symptoms == "" {
		return errorJSON(c, fiber.StatusBadRequest, errNoSymptoms)
	}

	rec, err := h.engine.Predict(c.Context(), symptoms)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			return errorJSON(c, fiber.StatusBadRequest, recommend.MessageOf(err))
		}
		h.log.Error("scoring failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, errPredictionFailed)
	}

	h.log.Debug("scored symptoms",
		zap.String("medicine", rec.Medicine),
		zap.Float64("confidence", rec.Confidence))
	return c.JSON(rec)
}

// ModelInfo handles GET /model-info.
func (h *Handler) ModelInfo(c fiber.Ctx) error {
	info, err := h.engine.ModelInfo(c.Context())
	if err != nil {
		h.log.Error("model info failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, errModelInfo)
	}
	return c.JSON(info)
}

// Health handles GET /health. The rule table is loaded before the service
// starts listening, so the model is always reported as loaded.
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(models.ScorerHealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now(),
		ModelLoaded: true,
	})
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: msg, Timestamp: time.Now()})
}
