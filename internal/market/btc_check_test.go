package market

import (
	"testing"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPctDrop(t *testing.T) {
	assert.InDelta(t, 10.0, pctDrop(100, 90), 1e-9)
	assert.InDelta(t, -10.0, pctDrop(100, 110), 1e-9)
	assert.InDelta(t, 0.0, pctDrop(100, 100), 1e-9)
	// Guard against a zero divisor from a malformed candle.
	assert.InDelta(t, 0.0, pctDrop(0, 90), 1e-9)
}

func TestCloseAt(t *testing.T) {
	klines := []*binance.Kline{
		{Close: "100.5"},
		{Close: " 99.25 "},
		nil,
		{Close: "abc"},
	}

	v, err := closeAt(klines, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100.5, v, 1e-9)

	v, err = closeAt(klines, 1)
	require.NoError(t, err)
	assert.InDelta(t, 99.25, v, 1e-9)

	_, err = closeAt(klines, 2)
	assert.Error(t, err)

	_, err = closeAt(klines, 3)
	assert.Error(t, err)

	_, err = closeAt(klines, 10)
	assert.Error(t, err)
}
