// Package market holds the portfolio-wide circuit breaker: a BTC crash check
// that halts new entries when the broader market is falling.
package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"govtrader/internal/logger"
)

const (
	btcSymbol   = "BTCUSDT"
	klineLimit  = 25
	twelveHours = 12
	fullDay     = 24
)

// CrashChecker inspects trailing hourly BTC closes and reports whether the
// configured drop threshold tripped over the 12h or 24h window.
type CrashChecker struct {
	client        *binance.Client
	dropThreshold float64
}

type CrashReport struct {
	CurrentPrice float64
	Drop12h      float64
	Drop24h      float64
	Significant  bool
}

func NewCrashChecker(apiKey, apiSecret, baseURL string, dropThresholdPct float64, timeout time.Duration) *CrashChecker {
	client := binance.NewClient(apiKey, apiSecret)
	if url := strings.TrimSpace(baseURL); url != "" {
		client.BaseURL = url
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client.HTTPClient = &http.Client{Timeout: timeout}
	return &CrashChecker{client: client, dropThreshold: dropThresholdPct}
}

// Check fetches trailing hourly candles from the spot market and compares
// the latest close against the closes 12 and 24 hours back.
func (c *CrashChecker) Check(ctx context.Context) (*CrashReport, error) {
	klines, err := c.client.NewKlinesService().
		Symbol(btcSymbol).
		Interval("1h").
		Limit(klineLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("btc klines: %w", err)
	}
	if len(klines) < fullDay+1 {
		return nil, fmt.Errorf("btc klines: got %d candles, need %d", len(klines), fullDay+1)
	}

	current, err := closeAt(klines, len(klines)-1)
	if err != nil {
		return nil, err
	}
	past12, err := closeAt(klines, len(klines)-twelveHours)
	if err != nil {
		return nil, err
	}
	past24, err := closeAt(klines, len(klines)-fullDay)
	if err != nil {
		return nil, err
	}

	report := &CrashReport{
		CurrentPrice: current,
		Drop12h:      pctDrop(past12, current),
		Drop24h:      pctDrop(past24, current),
	}
	report.Significant = report.Drop12h >= c.dropThreshold || report.Drop24h >= c.dropThreshold
	if report.Significant {
		logger.Warnf("[market] BTC drop tripped: 12h=%.2f%% 24h=%.2f%% threshold=%.2f%%",
			report.Drop12h, report.Drop24h, c.dropThreshold)
	}
	return report, nil
}

// ShouldBlock is the gate the orchestrator calls. A failed check never
// blocks trading on its own; it only logs, matching the rest of the
// fail-open macro gate.
func (c *CrashChecker) ShouldBlock(ctx context.Context) bool {
	report, err := c.Check(ctx)
	if err != nil {
		logger.Warnf("[market] btc crash check failed, not blocking: %v", err)
		return false
	}
	return report.Significant
}

func closeAt(klines []*binance.Kline, idx int) (float64, error) {
	if idx < 0 || idx >= len(klines) || klines[idx] == nil {
		return 0, fmt.Errorf("btc klines: missing candle at index %d", idx)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(klines[idx].Close), 64)
	if err != nil {
		return 0, fmt.Errorf("btc klines: bad close %q: %w", klines[idx].Close, err)
	}
	return v, nil
}

func pctDrop(past, current float64) float64 {
	if past == 0 {
		return 0
	}
	return (past - current) / past * 100
}
