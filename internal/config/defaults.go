package config

import "github.com/spf13/viper"

// envBindings maps every config key to the environment variable that feeds
// it. The variable names match the original deployment's .env surface.
var envBindings = map[string]string{
	"app.data_dir":              "DATA_DIR",
	"app.log_level":             "LOG_LEVEL",
	"app.log_path":              "LOG_PATH",
	"app.reasoning_log_path":    "REASONING_LOG_PATH",
	"app.scan_interval_seconds": "COUNTDOWN_TIME",
	"app.proposal_limit":        "PROPOSAL_LIMIT",

	"exchange.api_key":         "BINANCE_API_KEY",
	"exchange.api_secret":      "BINANCE_API_SECRET",
	"exchange.futures_url":     "BINANCE_FUTURES_URL",
	"exchange.spot_url":        "BINANCE_SPOT_URL",
	"exchange.timeout_seconds": "EXCHANGE_TIMEOUT_SECONDS",

	"trading.trade_amount":      "TRADE_AMOUNT",
	"trading.leverage":          "LEVERAGE",
	"trading.stop_loss_percent": "STOP_LOSS_PERCENT",
	"trading.max_trades":        "MAX_TRADES",

	"sentiment.score_bullish":    "SENTIMENT_SCORE_BULLISH",
	"sentiment.score_bearish":    "SENTIMENT_SCORE_BEARISH",
	"sentiment.primary_weight":   "SENTIMENT_PRIMARY_WEIGHT",
	"sentiment.secondary_weight": "SENTIMENT_SECONDARY_WEIGHT",
	"sentiment.trained_weight":   "SENTIMENT_TRAINED_WEIGHT",

	"reasoning.primary_endpoint":    "AGENT_ENDPOINT",
	"reasoning.primary_key":         "AGENT_KEY",
	"reasoning.primary_model":       "AGENT_MODEL",
	"reasoning.secondary_key":       "OPENAI_KEY",
	"reasoning.secondary_model":     "OPENAI_MODEL",
	"reasoning.timeout_seconds":     "REASONING_TIMEOUT_SECONDS",
	"reasoning.max_attempts":        "REASONING_MAX_ATTEMPTS",
	"reasoning.retry_delay_seconds": "REASONING_RETRY_DELAY_SECONDS",

	"models.server_url":      "MODEL_SERVER_URL",
	"models.timeout_seconds": "MODEL_TIMEOUT_SECONDS",

	"feed.provider_type":    "DATA_PROVIDER_TYPE",
	"feed.mongo_uri":        "MONGO_URI",
	"feed.mongo_db":         "MONGO_DB",
	"feed.mongo_collection": "MONGO_COLLECTION",
	"feed.rest_url":         "FEED_REST_URL",

	"notify.channel":            "NOTIFY_CHANNEL",
	"notify.slack_webhook_url":  "SLACK_WEBHOOK_URL",
	"notify.telegram_bot_token": "TELEGRAM_BOT_TOKEN",
	"notify.telegram_chat_id":   "TELEGRAM_CHAT_ID",

	"market.btc_drop_threshold": "BTC_DROP_THRESHOLD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.scan_interval_seconds", 60)
	v.SetDefault("app.proposal_limit", 20)

	v.SetDefault("exchange.timeout_seconds", 15)

	v.SetDefault("trading.trade_amount", 5000.0)
	v.SetDefault("trading.leverage", 3)
	v.SetDefault("trading.stop_loss_percent", 2.0)
	v.SetDefault("trading.max_trades", 4)

	v.SetDefault("sentiment.score_bullish", 0.80)
	v.SetDefault("sentiment.score_bearish", 0.80)
	v.SetDefault("sentiment.primary_weight", 0.4)
	v.SetDefault("sentiment.secondary_weight", 0.5)
	v.SetDefault("sentiment.trained_weight", 0.1)

	v.SetDefault("reasoning.primary_model", "deepseek-chat")
	v.SetDefault("reasoning.secondary_model", "o1-preview")
	v.SetDefault("reasoning.timeout_seconds", 60)
	v.SetDefault("reasoning.max_attempts", 5)
	v.SetDefault("reasoning.retry_delay_seconds", 1)

	v.SetDefault("models.timeout_seconds", 30)

	v.SetDefault("feed.provider_type", "mongodb")
	v.SetDefault("feed.mongo_db", "governance")
	v.SetDefault("feed.mongo_collection", "ai_posts")

	v.SetDefault("notify.channel", "slack")

	v.SetDefault("market.btc_drop_threshold", 2.5)
}
