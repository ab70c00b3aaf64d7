package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.example/T000/B000")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.App.ScanInterval)
	assert.Equal(t, 20, cfg.App.ProposalLimit)
	assert.InDelta(t, 5000.0, cfg.Trading.TradeAmount, 1e-9)
	assert.Equal(t, 3, cfg.Trading.Leverage)
	assert.InDelta(t, 2.0, cfg.Trading.StopLossPercent, 1e-9)
	assert.Equal(t, 4, cfg.Trading.MaxTrades)
	assert.InDelta(t, 0.80, cfg.Sentiment.BullishThreshold, 1e-9)
	assert.InDelta(t, 0.80, cfg.Sentiment.BearishThreshold, 1e-9)
	assert.InDelta(t, 0.4, cfg.Sentiment.PrimaryWeight, 1e-9)
	assert.InDelta(t, 0.5, cfg.Sentiment.SecondaryWeight, 1e-9)
	assert.InDelta(t, 0.1, cfg.Sentiment.TrainedWeight, 1e-9)
	assert.Equal(t, "mongodb", cfg.Feed.ProviderType)
	assert.Equal(t, "slack", cfg.Notify.Channel)
	assert.InDelta(t, 2.5, cfg.Market.BTCDropThreshold, 1e-9)
	assert.Equal(t, "deepseek-chat", cfg.Reasoning.PrimaryModel)
	assert.Equal(t, "o1-preview", cfg.Reasoning.SecondaryModel)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COUNTDOWN_TIME", "30")
	t.Setenv("TRADE_AMOUNT", "1000")
	t.Setenv("LEVERAGE", "5")
	t.Setenv("MAX_TRADES", "2")
	t.Setenv("SENTIMENT_SCORE_BULLISH", "0.9")
	t.Setenv("BTC_DROP_THRESHOLD", "3.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.App.ScanInterval)
	assert.InDelta(t, 1000.0, cfg.Trading.TradeAmount, 1e-9)
	assert.Equal(t, 5, cfg.Trading.Leverage)
	assert.Equal(t, 2, cfg.Trading.MaxTrades)
	assert.InDelta(t, 0.9, cfg.Sentiment.BullishThreshold, 1e-9)
	assert.InDelta(t, 3.5, cfg.Market.BTCDropThreshold, 1e-9)
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("SLACK_WEBHOOK_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_DIR")
	assert.Contains(t, err.Error(), "BINANCE_API_KEY")
}

func TestLoadRejectsBadRanges(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOP_LOSS_PERCENT", "150")
	t.Setenv("SENTIMENT_SCORE_BULLISH", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STOP_LOSS_PERCENT")
	assert.Contains(t, err.Error(), "SENTIMENT_SCORE_BULLISH")
}

func TestLoadTelegramChannelRequiresToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NOTIFY_CHANNEL", "telegram")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestDurationHelpers(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1m0s", cfg.App.ScanDelay().String())
	assert.Equal(t, "15s", cfg.Exchange.Timeout().String())
	assert.Equal(t, "1m0s", cfg.Reasoning.Timeout().String())
	assert.Equal(t, "1s", cfg.Reasoning.RetryDelay().String())
}
