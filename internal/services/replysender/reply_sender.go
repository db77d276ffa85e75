// Package replysender posts completion results back into the originating
// Slack conversation.
package replysender

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// defaultReplyTimeout bounds the chat.postMessage call so an inbound
// request can never hang on Slack indefinitely.
const defaultReplyTimeout = 30 * time.Second

// messagePoster is the slice of the Slack client used by the Sender.
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Sender delivers replies via chat.postMessage. Delivery is best effort:
// callers are expected to log and swallow errors, never retry.
type Sender struct {
	api messagePoster
}

// NewSender creates a Sender authenticated with the bot token.
func NewSender(botToken string) *Sender {
	client := slack.New(botToken,
		slack.OptionHTTPClient(&http.Client{Timeout: defaultReplyTimeout}))
	return &Sender{api: client}
}

// SendReply posts text to the channel. When threadTS is non-empty the reply
// is threaded under that message; otherwise it lands in-channel.
func (s *Sender) SendReply(ctx context.Context, channel, text, threadTS string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	if _, _, err := s.api.PostMessageContext(ctx, channel, opts...); err != nil {
		return fmt.Errorf("chat.postMessage to %s failed: %w", channel, err)
	}
	return nil
}
