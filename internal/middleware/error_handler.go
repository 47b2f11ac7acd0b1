package middleware

import (
	"errors"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Kinded errors map to their HTTP
// status; anything else returns 500 with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		details := map[string]interface{}{}
		for k, v := range appErr.Details {
			details[k] = v
		}
		return response.Error(c, appErr.Message, statusFor(appErr.Kind), details)
	}

	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, e.Message, e.Code, nil)
	}

	log.Error().Err(err).Str("request_id", RequestIDFrom(c)).Str("path", c.Path()).Msg("unhandled error")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindInvalidState:
		return fiber.StatusConflict
	case apperr.KindUnavailable:
		return fiber.StatusServiceUnavailable
	case apperr.KindTimeout:
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}
