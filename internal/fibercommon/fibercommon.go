// Package fibercommon holds the fiber middleware and error handling shared
// by all routes.
package fibercommon

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moritamori/slack-ai-chatbot/internal/richerrors"
)

type loggerCtxKey struct{}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoggerMiddleware attaches a request-scoped logger under a fresh request id
// and records the outcome of each successful request. Failed requests are
// logged by ErrorHandler instead, once the status code is known.
func LoggerMiddleware(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := base.With().
			Str("requestId", uuid.NewString()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.Locals(loggerCtxKey{}, &logger)

		start := time.Now()
		if err := c.Next(); err != nil {
			return err
		}
		logger.Info().
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
		return nil
	}
}

// CtxLogger returns the request-scoped logger stored by LoggerMiddleware,
// or a disabled logger when none is present.
func CtxLogger(c *fiber.Ctx) *zerolog.Logger {
	if logger, ok := c.Locals(loggerCtxKey{}).(*zerolog.Logger); ok {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}

// ErrorHandler renders errors escaping a handler as structured JSON bodies.
// Slack retries delivery on non-2xx responses, so internal failures surface
// as explicit 500 bodies rather than an unhandled fault.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fiberErr *fiber.Error
	if richErr, ok := richerrors.AsRichError(err); ok {
		if richErr.Code >= fiber.StatusBadRequest {
			code = richErr.Code
		}
		if richErr.ExternalMsg != "" {
			msg = richErr.ExternalMsg
		}
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	}

	CtxLogger(c).Error().Err(err).Int("status", code).Msg("Request failed")
	return c.Status(code).JSON(ErrorResponse{Status: "error", Message: msg})
}
