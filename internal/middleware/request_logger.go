package middleware

import (
	"errors"
	"time"

	"assettrack-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RequestLogger emits one structured line per completed request with
// method, path, response status and elapsed time.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var appErr *apperr.Error
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if errors.As(err, &appErr) {
				status = statusFor(appErr.Kind)
			}
		}
		log.Info().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
		return err
	}
}
