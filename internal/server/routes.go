package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"medrec/internal/handlers"
	"medrec/internal/handlers/api"
	"medrec/internal/handlers/scoring"
	"medrec/internal/metrics"
	"medrec/internal/middleware"
	"medrec/internal/recommend"
)

// RegisterRoutes registers the gateway routes. predictor is either the
// in-process engine or the remote scoring client.
func (s *Server) RegisterRoutes(predictor recommend.Predictor) {
	metrics.Init()

	// CORS: only the configured frontend may call the API
	s.App.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.Cfg.AllowedOrigin},
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Initialize handlers
	pinger, _ := predictor.(recommend.Pinger)
	probeHandler := handlers.NewProbeHandler(pinger)
	healthHandler := handlers.NewHealthHandler(s.Cfg.ServiceName)
	symptomHandler := api.NewSymptomHandler(predictor, s.Log)

	// Health and metrics endpoints are not rate limited
	s.App.Get("/health", healthHandler.Health)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", metrics.Handler())

	var storage fiber.Storage
	if s.Cfg.RedisURL != "" {
		storage = middleware.NewRedisStorage(s.Cfg.RedisURL)
	}

	apiGroup := s.App.Group("/api", middleware.RateLimiter(middleware.RateLimitConfig{
		Max:     s.Cfg.RateLimitMax,
		Window:  s.Cfg.RateLimitWindow,
		Storage: storage,
	}))
	apiGroup.Post("/symptoms/predict", symptomHandler.Predict)
	apiGroup.Get("/symptoms/info", symptomHandler.Info)

	s.App.Use(api.NotFound)
}

// RegisterScorerRoutes registers the scoring service routes backed by engine.
func (s *Server) RegisterScorerRoutes(engine *recommend.Engine) {
	h := scoring.NewHandler(engine, s.Log)

	s.App.Post("/predict", h.Predict)
	s.App.Get("/model-info", h.ModelInfo)
	s.App.Get("/health", h.Health)

	s.App.Use(api.NotFound)
}
