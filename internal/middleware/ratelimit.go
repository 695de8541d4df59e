package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"

	"medrec/internal/models"
)

// MsgRateLimited is returned when a client exceeds its request budget.
const MsgRateLimited = "Too many requests from this IP, please try again later."

// RateLimitConfig configures RateLimiter.
type RateLimitConfig struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage // nil keeps counters in memory
}

// RateLimiter allows Max requests per Window for each client IP using a
// fixed window.
func RateLimiter(cfg RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error:     MsgRateLimited,
				Timestamp: time.Now(),
			})
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	})
}

// NewRedisStorage returns limiter storage shared by every gateway replica.
func NewRedisStorage(url string) fiber.Storage {
	return redis.New(redis.Config{URL: url})
}
