// Package events exposes the Slack event intake and slash command handlers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/moritamori/slack-ai-chatbot/internal/fibercommon"
	"github.com/moritamori/slack-ai-chatbot/internal/richerrors"
)

// mentionPattern matches <@U…> style user references in message text.
var mentionPattern = regexp.MustCompile(`<@[^>]+>`)

const (
	responseTypeInChannel = "in_channel"
	responseTypeEphemeral = "ephemeral"

	// commandErrorText is shown, only to the caller, when a slash command fails.
	commandErrorText = "エラーが発生しました。"
)

// Verifier validates that a request was signed by Slack.
type Verifier interface {
	Verify(body []byte, timestamp, signature string) bool
}

// Completer produces a completion for a user message, degrading to a fixed
// fallback string instead of failing.
type Completer interface {
	CompleteWithFallback(ctx context.Context, message, userID string) string
}

// ReplySender posts a reply into a conversation.
type ReplySender interface {
	SendReply(ctx context.Context, channel, text, threadTS string) error
}

// Controller handles the event intake and slash command endpoints.
type Controller struct {
	verifier      Verifier
	completer     Completer
	replies       ReplySender
	allowUnsigned bool
}

// NewController creates a Controller. allowUnsigned restores the permissive
// mode where events missing both signing headers are processed with a
// warning instead of rejected.
func NewController(verifier Verifier, completer Completer, replies ReplySender, allowUnsigned bool) *Controller {
	return &Controller{
		verifier:      verifier,
		completer:     completer,
		replies:       replies,
		allowUnsigned: allowUnsigned,
	}
}

// HandleEvent handles POST /slack/events: the URL verification handshake
// and event_callback deliveries. Every accepted event is acknowledged with
// 200 whether or not it triggers a reply, because Slack retries on non-2xx.
func (ec *Controller) HandleEvent(c *fiber.Ctx) error {
	body := c.Body()
	logger := fibercommon.CtxLogger(c)

	var envelope EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return richerrors.Error{
			Code:        fiber.StatusBadRequest,
			ExternalMsg: "Invalid JSON payload",
			Err:         err,
		}
	}

	// The handshake happens before the signing secret exchange is
	// guaranteed to match, so it is answered without a signature check.
	if envelope.Type == envelopeURLVerification {
		if envelope.Challenge == "" {
			return richerrors.Error{
				Code:        fiber.StatusBadRequest,
				ExternalMsg: "Missing challenge",
				Err:         errors.New("url_verification envelope without challenge"),
			}
		}
		return c.JSON(ChallengeResponse{Challenge: envelope.Challenge})
	}

	signature := c.Get(headerSignature)
	timestamp := c.Get(headerTimestamp)
	if signature == "" || timestamp == "" {
		if !ec.allowUnsigned {
			return richerrors.Error{
				Code:        fiber.StatusUnauthorized,
				ExternalMsg: "Invalid signature",
				Err:         errors.New("signature headers missing on non-handshake event"),
			}
		}
		logger.Warn().Msg("Signature headers missing, processing unsigned event")
	} else if !ec.verifier.Verify(body, timestamp, signature) {
		return richerrors.Error{
			Code:        fiber.StatusUnauthorized,
			ExternalMsg: "Invalid signature",
			Err:         errors.New("request signature does not match"),
		}
	}

	if envelope.Type == envelopeEventCallback && envelope.Event != nil {
		ec.handleCallback(c.Context(), logger, envelope.Event)
	}

	return c.JSON(AckResponse{Status: "ok"})
}

// handleCallback runs the mention → completion → threaded reply flow. It is
// the only path that produces outbound API calls.
func (ec *Controller) handleCallback(ctx context.Context, logger *zerolog.Logger, event *EventPayload) {
	// Never answer automated accounts; replying to another bot (or to
	// ourselves) would loop.
	if event.BotID != "" {
		logger.Debug().Str("botId", event.BotID).Msg("Ignoring bot-authored event")
		return
	}

	if event.Type != eventAppMention {
		logger.Debug().Str("eventType", event.Type).Msg("Ignoring unhandled event type")
		return
	}

	text := strings.TrimSpace(mentionPattern.ReplaceAllString(event.Text, ""))
	if text == "" {
		logger.Debug().Msg("Mention carried no message text")
		return
	}

	reply := ec.completer.CompleteWithFallback(ctx, text, event.User)

	// Threaded under the original message; delivery is best effort.
	if err := ec.replies.SendReply(ctx, event.Channel, reply, event.TS); err != nil {
		logger.Error().Err(err).Str("channel", event.Channel).Msg("Failed to post reply")
	}
}

// HandleCommand handles POST /slack/commands. Unlike the mention path there
// is no emptiness guard on the command text, and failures are reported as
// an ephemeral message to the caller rather than a bare 500.
func (ec *Controller) HandleCommand(c *fiber.Ctx) error {
	logger := fibercommon.CtxLogger(c)

	var cmd SlashCommandRequest
	if err := c.BodyParser(&cmd); err != nil {
		logger.Error().Err(err).Msg("Failed to parse slash command form")
		return ephemeralError(c)
	}

	reply := ec.completer.CompleteWithFallback(c.Context(), cmd.Text, cmd.UserID)

	if err := ec.replies.SendReply(c.Context(), cmd.ChannelID, reply, ""); err != nil {
		logger.Error().Err(err).
			Str("command", cmd.Command).
			Str("channel", cmd.ChannelID).
			Msg("Failed to post command reply")
		return ephemeralError(c)
	}

	return c.JSON(CommandResponse{ResponseType: responseTypeInChannel, Text: reply})
}

func ephemeralError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(CommandResponse{
		ResponseType: responseTypeEphemeral,
		Text:         commandErrorText,
	})
}
