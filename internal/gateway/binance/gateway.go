// Package binance implements the exchange gateway against Binance
// USDT-margined futures via the go-binance SDK.
package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"

	"govtrader/internal/gateway/exchange"
	"govtrader/internal/logger"
	"govtrader/internal/pkg/retry"
	symbolpkg "govtrader/internal/pkg/symbol"
	"govtrader/internal/types"
)

type Gateway struct {
	cfg     Config
	client  *futures.Client
	symbols *symbolpkg.Table
}

var _ exchange.Gateway = (*Gateway)(nil)

func New(cfg Config, symbols *symbolpkg.Table) *Gateway {
	final := cfg.withDefaults()
	client := futures.NewClient(final.APIKey, final.APISecret)
	if url := strings.TrimSpace(final.FuturesURL); url != "" {
		client.BaseURL = url
	}
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	if symbols == nil {
		symbols = symbolpkg.NewTable()
	}
	return &Gateway{cfg: final, client: client, symbols: symbols}
}

func (g *Gateway) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := g.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, &exchange.MarketDataError{Symbol: symbol, Err: err}
	}
	for _, p := range prices {
		if p == nil || !strings.EqualFold(p.Symbol, symbol) {
			continue
		}
		d, perr := decimal.NewFromString(strings.TrimSpace(p.Price))
		if perr != nil {
			return decimal.Zero, &exchange.MarketDataError{Symbol: symbol, Err: perr}
		}
		return d, nil
	}
	return decimal.Zero, &exchange.MarketDataError{Symbol: symbol, Err: fmt.Errorf("no ticker returned")}
}

func (g *Gateway) ListOpenPositions(ctx context.Context) ([]exchange.OpenPosition, error) {
	var raw []*futures.PositionRisk
	err := retry.Do(ctx, g.cfg.FetchAttempts, g.cfg.FetchDelay, func() error {
		var ferr error
		raw, ferr = g.client.NewGetPositionRiskService().Do(ctx)
		if ferr != nil {
			logger.Warnf("[binance] position fetch failed, will retry: %v", ferr)
		}
		return ferr
	})
	if err != nil {
		return nil, &exchange.PositionFetchError{Attempts: g.cfg.FetchAttempts, Err: err}
	}
	out := make([]exchange.OpenPosition, 0, len(raw))
	for _, pos := range raw {
		if pos == nil {
			continue
		}
		amt, perr := decimal.NewFromString(strings.TrimSpace(pos.PositionAmt))
		if perr != nil || amt.IsZero() {
			continue
		}
		out = append(out, exchange.OpenPosition{Symbol: pos.Symbol, Quantity: amt.Abs()})
	}
	return out, nil
}

func (g *Gateway) ClosePosition(ctx context.Context, symbol string, quantity decimal.Decimal, side types.Side) error {
	// Protective orders first, otherwise the reduce-only close can race the
	// resting stop.
	if err := g.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx); err != nil {
		logger.Warnf("[binance] cancel open orders on %s failed: %v", symbol, err)
	}
	exitSide := futures.SideTypeSell
	if side == types.SideShort {
		exitSide = futures.SideTypeBuy
	}
	_, err := g.client.NewCreateOrderService().
		Symbol(symbol).
		Side(exitSide).
		Type(futures.OrderTypeMarket).
		Quantity(quantity.String()).
		ReduceOnly(true).
		Do(ctx)
	if err != nil {
		return &exchange.OrderPlacementError{Symbol: symbol, Leg: exchange.LegEntry, Err: err}
	}
	return nil
}

func (g *Gateway) CheckOrderStatus(ctx context.Context, symbol, orderID string) (exchange.OrderStatus, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid order id %q: %w", orderID, err)
	}
	open, err := g.client.NewListOpenOrdersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return "", &exchange.MarketDataError{Symbol: symbol, Err: err}
	}
	for _, o := range open {
		if o != nil && o.OrderID == id {
			return exchange.OrderStatusResting, nil
		}
	}
	return exchange.OrderStatusGone, nil
}

func formatOrderID(id int64) string {
	return strconv.FormatInt(id, 10)
}
