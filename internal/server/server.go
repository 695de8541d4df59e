package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"medrec/internal/config"
	"medrec/internal/middleware"
	"medrec/internal/models"
)

const (
	errInternal = "Internal server error"
	msgInternal = "Something went wrong"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	Log *zap.Logger
}

// New creates a new server with the common middleware configured. Routes are
// added by RegisterRoutes or RegisterScorerRoutes.
func New(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(cfg, log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	return &Server{
		App: app,
		Cfg: cfg,
		Log: log,
	}
}

// errorHandler renders unhandled errors as JSON. Error details are only
// exposed in development.
func errorHandler(cfg *config.Config, log *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := msgInternal

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if cfg.IsDev() {
			message = err.Error()
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(models.ErrorResponse{
			Error:     errInternal,
			Message:   message,
			Timestamp: time.Now(),
		})
	}
}

// Start listens on addr until the server is shut down.
func (s *Server) Start(addr string) error {
	s.Log.Info("listening", zap.String("addr", addr), zap.String("env", s.Cfg.Env))
	return s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
