package events

// Envelope types sent by the Slack Events API.
const (
	envelopeURLVerification = "url_verification"
	envelopeEventCallback   = "event_callback"
)

// eventAppMention is the inner event type fired when the bot is mentioned.
const eventAppMention = "app_mention"

// Signing headers set by Slack on event deliveries.
const (
	headerSignature = "X-Slack-Signature"
	headerTimestamp = "X-Slack-Request-Timestamp"
)

// EventEnvelope is the outer payload POSTed to /slack/events.
type EventEnvelope struct {
	Type      string        `json:"type"`
	Challenge string        `json:"challenge,omitempty"`
	Event     *EventPayload `json:"event,omitempty"`
}

// EventPayload is the nested event inside an event_callback envelope.
type EventPayload struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	Text    string `json:"text"`
	TS      string `json:"ts"`
	BotID   string `json:"bot_id,omitempty"`
}

// SlashCommandRequest is the form-encoded body of a slash command delivery.
type SlashCommandRequest struct {
	Command   string `form:"command"`
	Text      string `form:"text"`
	ChannelID string `form:"channel_id"`
	UserID    string `form:"user_id"`
}

// ChallengeResponse answers the URL verification handshake.
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

// AckResponse acknowledges an event with no further action.
type AckResponse struct {
	Status string `json:"status"`
}

// CommandResponse is returned to Slack for slash commands.
type CommandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}
