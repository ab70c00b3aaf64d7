package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"govtrader/internal/types"
)

// Gateway wraps order placement, cancellation and position queries against a
// single futures account. Components depend on this interface so the engine
// can be tested without the exchange.
type Gateway interface {
	// CurrentPrice returns the latest ticker price for a futures symbol.
	// Failures surface as *MarketDataError.
	CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// OpenLong places a market entry plus a stop-market and a limit
	// take-profit leg. targetFraction is the profit distance as a fraction
	// of the entry price (0.05 = 5%).
	OpenLong(ctx context.Context, symbol string, targetFraction float64) (*OrderResult, error)

	// OpenShort mirrors OpenLong with inverted stop/target directions.
	OpenShort(ctx context.Context, symbol string, targetFraction float64) (*OrderResult, error)

	// ClosePosition cancels the protective orders and flattens the position
	// with an opposite-side reduce-only market order.
	ClosePosition(ctx context.Context, symbol string, quantity decimal.Decimal, side types.Side) error

	// ListOpenPositions returns every position with nonzero quantity. After
	// the retry budget is exhausted it returns *PositionFetchError; callers
	// must treat that as unknown state, never as "no positions".
	ListOpenPositions(ctx context.Context) ([]OpenPosition, error)

	// CheckOrderStatus reports whether an order is still resting on the
	// book.
	CheckOrderStatus(ctx context.Context, symbol, orderID string) (OrderStatus, error)
}
