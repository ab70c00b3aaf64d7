package notifier

import (
	"fmt"
	"strings"

	"govtrader/internal/config"
)

// FromConfig builds the configured notification channel. Slack is the
// default when no channel is named.
func FromConfig(cfg config.NotifyConfig) (TextNotifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Channel)) {
	case "", "slack":
		return NewSlack(cfg.SlackWebhookURL), nil
	case "telegram":
		return NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.Channel)
	}
}
