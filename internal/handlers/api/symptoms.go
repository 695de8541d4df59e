package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"medrec/internal/metrics"
	"medrec/internal/models"
	"medrec/internal/recommend"
	"medrec/internal/validation"
)

// Error bodies for failed predictions.
const (
	errInvalidInput     = "Invalid input"
	errServiceDown      = "AI service unavailable"
	errPredictionFailed = "Prediction failed"
	errModelInfoFailed  = "Unable to fetch model information"
	msgServiceDown      = "The AI model service is currently down. Please try again later."
	msgPredictionFailed = "Unable to process your symptoms. Please try again."
	msgInvalidSymptoms  = "Invalid symptoms format"
)

// SymptomHandler serves the symptom prediction API.
type SymptomHandler struct {
	predictor recommend.Predictor
	log       *zap.Logger
}

// NewSymptomHandler creates a handler backed by predictor, which is either
// the in-process engine or the remote scorer client.
func NewSymptomHandler(predictor recommend.Predictor, log *zap.Logger) *SymptomHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SymptomHandler{predictor: predictor, log: log}
}

type predictRequest struct {
	Symptoms any `json:"symptoms"`
}

// Predict handles POST /api/symptoms/predict.
func (h *SymptomHandler) Predict(c fiber.Ctx) error {
	var req predictRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		// Unparseable bodies carry no symptoms field.
		req.Symptoms = nil
	}

	symptoms, err := validation.ValidateSymptoms(req.Symptoms)
	if err != nil {
		return h.predictError(c, err)
	}

	start := time.Now()
	h.log.Debug("prediction request", zap.String("symptoms", symptoms))

	rec, err := h.predictor.Predict(c.Context(), symptoms)
	elapsed := time.Since(start)
	if err != nil {
		return h.predictError(c, err)
	}

	h.log.Info("prediction completed",
		zap.String("medicine", rec.Medicine),
		zap.Float64("confidence", rec.Confidence),
		zap.Duration("elapsed", elapsed))
	metrics.RecordPrediction(rec.Medicine, rec.HasAlternatives(), elapsed)

	now := time.Now()
	return c.JSON(models.PredictResponse{
		Recommendation: *rec,
		Metadata: models.ResponseMetadata{
			ResponseTime:     fmt.Sprintf("%dms", elapsed.Milliseconds()),
			BackendTimestamp: now,
			RequestID:        NewRequestID(now),
		},
	})
}

// Info handles GET /api/symptoms/info.
func (h *SymptomHandler) Info(c fiber.Ctx) error {
	info, err := h.predictor.ModelInfo(c.Context())
	if err != nil {
		h.log.Error("model info failed", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, models.ErrorResponse{Error: errModelInfoFailed})
	}
	return c.JSON(info)
}

// predictError maps a classified failure to its HTTP response.
func (h *SymptomHandler) predictError(c fiber.Ctx, err error) error {
	switch recommend.KindOf(err) {
	case recommend.ErrInvalidInput:
		metrics.RecordFailure(metrics.OutcomeInvalidInput)
		if code := recommend.CodeOf(err); code != "" {
			return jsonError(c, fiber.StatusBadRequest, models.ErrorResponse{
				Error: recommend.MessageOf(err),
				Code:  code,
			})
		}
		msg := recommend.MessageOf(err)
		if msg == "" {
			msg = msgInvalidSymptoms
		}
		return jsonError(c, fiber.StatusBadRequest, models.ErrorResponse{Error: errInvalidInput, Message: msg})

	case recommend.ErrServiceUnavailable:
		h.log.Error("scoring service unavailable", zap.Error(err))
		metrics.RecordFailure(metrics.OutcomeServiceUnavailable)
		return jsonError(c, fiber.StatusServiceUnavailable, models.ErrorResponse{
			Error:   errServiceDown,
			Message: msgServiceDown,
		})

	default:
		h.log.Error("prediction failed", zap.Error(err), zap.Bool("classified", errors.Is(err, recommend.ErrPredictionFailed)))
		metrics.RecordFailure(metrics.OutcomePredictionFailed)
		return jsonError(c, fiber.StatusInternalServerError, models.ErrorResponse{
			Error:   errPredictionFailed,
			Message: msgPredictionFailed,
		})
	}
}
