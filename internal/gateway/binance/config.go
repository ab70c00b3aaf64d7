package binance

import "time"

type Config struct {
	APIKey     string
	APISecret  string
	FuturesURL string
	// HTTPTimeout caps every REST call so one hung request cannot stall a
	// scan cycle.
	HTTPTimeout time.Duration

	TradeAmount     float64
	Leverage        int
	StopLossPercent float64

	// Position-list fetch retry budget.
	FetchAttempts int
	FetchDelay    time.Duration

	// Protective-leg retry budget before an unprotected entry is force
	// closed.
	LegAttempts int
	LegDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	if c.Leverage <= 0 {
		c.Leverage = 3
	}
	if c.StopLossPercent <= 0 {
		c.StopLossPercent = 2.0
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = 5
	}
	if c.FetchDelay <= 0 {
		c.FetchDelay = 2 * time.Second
	}
	if c.LegAttempts <= 0 {
		c.LegAttempts = 3
	}
	if c.LegDelay <= 0 {
		c.LegDelay = time.Second
	}
	return c
}
