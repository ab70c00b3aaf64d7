package config

import (
	"fmt"
	"strings"
)

func validate(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.App.DataDir) == "" {
		problems = append(problems, "DATA_DIR is required")
	}
	if strings.TrimSpace(cfg.Exchange.APIKey) == "" || strings.TrimSpace(cfg.Exchange.APISecret) == "" {
		problems = append(problems, "BINANCE_API_KEY / BINANCE_API_SECRET are required")
	}
	if cfg.App.ScanInterval <= 0 {
		problems = append(problems, "COUNTDOWN_TIME must be positive")
	}
	if cfg.Trading.TradeAmount <= 0 {
		problems = append(problems, "TRADE_AMOUNT must be positive")
	}
	if cfg.Trading.Leverage <= 0 {
		problems = append(problems, "LEVERAGE must be positive")
	}
	if cfg.Trading.MaxTrades <= 0 {
		problems = append(problems, "MAX_TRADES must be positive")
	}
	if cfg.Trading.StopLossPercent <= 0 || cfg.Trading.StopLossPercent >= 100 {
		problems = append(problems, "STOP_LOSS_PERCENT must be in (0, 100)")
	}
	if cfg.Sentiment.BullishThreshold < 0 || cfg.Sentiment.BullishThreshold > 1 {
		problems = append(problems, "SENTIMENT_SCORE_BULLISH must be in [0, 1]")
	}
	if cfg.Sentiment.BearishThreshold < 0 || cfg.Sentiment.BearishThreshold > 1 {
		problems = append(problems, "SENTIMENT_SCORE_BEARISH must be in [0, 1]")
	}
	if sum := cfg.Sentiment.PrimaryWeight + cfg.Sentiment.SecondaryWeight + cfg.Sentiment.TrainedWeight; sum <= 0 {
		problems = append(problems, "sentiment weights must sum to a positive value")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Feed.ProviderType)) {
	case "mongodb":
		if strings.TrimSpace(cfg.Feed.MongoURI) == "" {
			problems = append(problems, "MONGO_URI is required for the mongodb feed provider")
		}
	case "rest":
		if strings.TrimSpace(cfg.Feed.RestURL) == "" {
			problems = append(problems, "FEED_REST_URL is required for the rest feed provider")
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Notify.Channel)) {
	case "", "slack":
		if strings.TrimSpace(cfg.Notify.SlackWebhookURL) == "" {
			problems = append(problems, "SLACK_WEBHOOK_URL is required for the slack notifier")
		}
	case "telegram":
		if strings.TrimSpace(cfg.Notify.TelegramToken) == "" || cfg.Notify.TelegramChatID == 0 {
			problems = append(problems, "TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID are required for the telegram notifier")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
