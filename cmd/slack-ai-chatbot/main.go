package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/moritamori/slack-ai-chatbot/internal/app"
	"github.com/moritamori/slack-ai-chatbot/internal/clients/completion"
	"github.com/moritamori/slack-ai-chatbot/internal/config"
	"github.com/moritamori/slack-ai-chatbot/internal/services/replysender"
	"github.com/moritamori/slack-ai-chatbot/internal/services/signature"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load a local .env when present; deployed environments set real env vars.
	_ = godotenv.Load()

	settings, err := env.ParseAs[config.Settings]()
	if err != nil {
		log.Fatalf("could not load settings: %s", err)
	}

	// Configure logger
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		log.Fatalf("could not parse log level: %s", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Str("app", settings.ServiceName).
		Logger()

	if missing := settings.MissingCredentials(); len(missing) > 0 {
		logger.Warn().Strs("vars", missing).
			Msg("Required credentials are unset; health check stays up but event handling will fail")
	}

	verifier := signature.NewVerifier(settings.SlackSigningSecret)
	completer := completion.New(settings.OpenAIAPIKey, settings.OpenAIModel, "", logger)
	sender := replysender.NewSender(settings.SlackBotToken)

	fiberApp := app.CreateFiberApp(&settings, logger, verifier, completer, sender)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Int("port", settings.Port).Msg("Starting server")
		if err := fiberApp.Listen(fmt.Sprintf(":%d", settings.Port)); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
