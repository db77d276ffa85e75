// Package app wires the HTTP surface together.
package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/moritamori/slack-ai-chatbot/internal/config"
	"github.com/moritamori/slack-ai-chatbot/internal/controllers/events"
	"github.com/moritamori/slack-ai-chatbot/internal/fibercommon"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateFiberApp builds the HTTP app with all routes registered. The
// outbound clients are injected so the app can be exercised with fakes.
func CreateFiberApp(settings *config.Settings, logger zerolog.Logger,
	verifier events.Verifier, completer events.Completer, sender events.ReplySender) *fiber.App {

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.LoggerMiddleware(logger))

	controller := events.NewController(verifier, completer, sender, settings.AllowUnsignedEvents)

	health := func(c *fiber.Ctx) error {
		return c.JSON(statusResponse{
			Status:  "ok",
			Message: fmt.Sprintf("%s is running", settings.ServiceName),
		})
	}
	app.Get("/", health)
	app.Get("/health", health)

	app.Post("/slack/events", controller.HandleEvent)
	app.Post("/slack/commands", controller.HandleCommand)

	return app
}
