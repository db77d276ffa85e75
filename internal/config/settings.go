package config

// Settings contains the application config
type Settings struct {
	Port                int    `env:"PORT" envDefault:"8000"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
	ServiceName         string `env:"SERVICE_NAME" envDefault:"slack-ai-chatbot"`
	SlackBotToken       string `env:"SLACK_BOT_TOKEN"`
	SlackSigningSecret  string `env:"SLACK_SIGNING_SECRET"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel         string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AllowUnsignedEvents bool   `env:"ALLOW_UNSIGNED_EVENTS" envDefault:"false"`
}

// MissingCredentials returns the names of required credentials that are
// unset. Startup only warns about these so the health check stays reachable
// in a misconfigured deployment.
func (s *Settings) MissingCredentials() []string {
	var missing []string
	if s.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if s.SlackSigningSecret == "" {
		missing = append(missing, "SLACK_SIGNING_SECRET")
	}
	if s.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	return missing
}
