package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

// Middleware rejects clients over the limit with 429. Limiter failures let the request through.
func Middleware(limiter Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		allowed, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			return c.Next()
		}
		if !allowed {
			logger.Info("rate limit exceeded", zap.String("key", key), zap.String("path", c.Path()))
			c.Set(fiber.HeaderRetryAfter, "60")
			return apperrors.NewRateLimited("too many requests")
		}
		return c.Next()
	}
}
