package config

import "time"

// Config is the single immutable configuration for the whole process. It is
// resolved once at startup and handed by pointer into every component
// constructor; nothing reads the environment after Load returns.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Exchange  ExchangeConfig  `mapstructure:"exchange"`
	Trading   TradingConfig   `mapstructure:"trading"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Reasoning ReasoningConfig `mapstructure:"reasoning"`
	Models    ModelsConfig    `mapstructure:"models"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Market    MarketConfig    `mapstructure:"market"`
}

type AppConfig struct {
	DataDir       string `mapstructure:"data_dir"`
	LogLevel      string `mapstructure:"log_level"`
	LogPath       string `mapstructure:"log_path"`
	ReasoningLog  string `mapstructure:"reasoning_log_path"`
	ScanInterval  int    `mapstructure:"scan_interval_seconds"`
	ProposalLimit int    `mapstructure:"proposal_limit"`
}

func (a AppConfig) ScanDelay() time.Duration {
	return time.Duration(a.ScanInterval) * time.Second
}

type ExchangeConfig struct {
	APIKey      string `mapstructure:"api_key"`
	APISecret   string `mapstructure:"api_secret"`
	FuturesURL  string `mapstructure:"futures_url"`
	SpotURL     string `mapstructure:"spot_url"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`
}

func (e ExchangeConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

type TradingConfig struct {
	TradeAmount     float64 `mapstructure:"trade_amount"`
	Leverage        int     `mapstructure:"leverage"`
	StopLossPercent float64 `mapstructure:"stop_loss_percent"`
	MaxTrades       int     `mapstructure:"max_trades"`
}

type SentimentConfig struct {
	BullishThreshold float64 `mapstructure:"score_bullish"`
	BearishThreshold float64 `mapstructure:"score_bearish"`
	PrimaryWeight    float64 `mapstructure:"primary_weight"`
	SecondaryWeight  float64 `mapstructure:"secondary_weight"`
	TrainedWeight    float64 `mapstructure:"trained_weight"`
}

// ReasoningConfig covers both hosted reasoning services. The primary one is
// any OpenAI-compatible endpoint (base URL + key); the secondary is OpenAI
// proper.
type ReasoningConfig struct {
	PrimaryEndpoint string `mapstructure:"primary_endpoint"`
	PrimaryKey      string `mapstructure:"primary_key"`
	PrimaryModel    string `mapstructure:"primary_model"`
	SecondaryKey    string `mapstructure:"secondary_key"`
	SecondaryModel  string `mapstructure:"secondary_model"`
	TimeoutSecs     int    `mapstructure:"timeout_seconds"`
	MaxAttempts     int    `mapstructure:"max_attempts"`
	RetryDelaySecs  int    `mapstructure:"retry_delay_seconds"`
}

func (r ReasoningConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSecs) * time.Second
}

func (r ReasoningConfig) RetryDelay() time.Duration {
	return time.Duration(r.RetryDelaySecs) * time.Second
}

// ModelsConfig points at the local model server hosting the regression
// classifiers and the summarizer.
type ModelsConfig struct {
	ServerURL   string `mapstructure:"server_url"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`
}

func (m ModelsConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSecs) * time.Second
}

type FeedConfig struct {
	ProviderType string `mapstructure:"provider_type"`
	MongoURI     string `mapstructure:"mongo_uri"`
	MongoDB      string `mapstructure:"mongo_db"`
	MongoColl    string `mapstructure:"mongo_collection"`
	RestURL      string `mapstructure:"rest_url"`
}

type NotifyConfig struct {
	Channel         string `mapstructure:"channel"`
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
	TelegramToken   string `mapstructure:"telegram_bot_token"`
	TelegramChatID  int64  `mapstructure:"telegram_chat_id"`
}

type MarketConfig struct {
	BTCDropThreshold float64 `mapstructure:"btc_drop_threshold"`
}
