package binance

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"govtrader/internal/gateway/exchange"
	"govtrader/internal/logger"
	"govtrader/internal/pkg/retry"
	"govtrader/internal/types"
)

func (g *Gateway) OpenLong(ctx context.Context, symbol string, targetFraction float64) (*exchange.OrderResult, error) {
	return g.openPosition(ctx, symbol, types.SideLong, targetFraction)
}

func (g *Gateway) OpenShort(ctx context.Context, symbol string, targetFraction float64) (*exchange.OrderResult, error) {
	return g.openPosition(ctx, symbol, types.SideShort, targetFraction)
}

// openPosition places the three legs in order: market entry, stop-market,
// limit take-profit. A failed protective leg is retried on its own budget;
// if it still fails the entry is force closed rather than left naked.
func (g *Gateway) openPosition(ctx context.Context, symbol string, side types.Side, targetFraction float64) (*exchange.OrderResult, error) {
	long := side == types.SideLong

	price, err := g.CurrentPrice(ctx, symbol)
	if err != nil {
		return nil, &exchange.OrderPlacementError{Symbol: symbol, Leg: exchange.LegEntry, Err: err}
	}
	quantity := positionQuantity(g.cfg.TradeAmount, g.cfg.Leverage, price, g.symbols.QuantityPrecision(symbol))
	if quantity.IsZero() {
		return nil, &exchange.OrderPlacementError{
			Symbol: symbol, Leg: exchange.LegEntry,
			Err: fmt.Errorf("computed quantity is zero at price %s", price),
		}
	}

	if _, err := g.client.NewChangeLeverageService().Symbol(symbol).Leverage(g.cfg.Leverage).Do(ctx); err != nil {
		return nil, &exchange.OrderPlacementError{Symbol: symbol, Leg: exchange.LegEntry, Err: fmt.Errorf("set leverage: %w", err)}
	}

	entrySide, exitSide := futures.SideTypeBuy, futures.SideTypeSell
	if !long {
		entrySide, exitSide = futures.SideTypeSell, futures.SideTypeBuy
	}

	entry, err := g.client.NewCreateOrderService().
		Symbol(symbol).
		Side(entrySide).
		Type(futures.OrderTypeMarket).
		Quantity(quantity.String()).
		NewClientOrderID("gov-" + uuid.NewString()).
		Do(ctx)
	if err != nil {
		return nil, &exchange.OrderPlacementError{Symbol: symbol, Leg: exchange.LegEntry, Err: err}
	}
	entryID := formatOrderID(entry.OrderID)

	// Re-read after the fill; the market entry moves the book.
	entryPrice, err := g.CurrentPrice(ctx, symbol)
	if err != nil {
		entryPrice = price
		logger.Warnf("[binance] post-fill price read on %s failed, using pre-fill price: %v", symbol, err)
	}
	logger.Infof("[binance] %s %s filled: qty=%s price=%s order=%s", side, symbol, quantity, entryPrice, entryID)

	stopPrice := stopLossPrice(entryPrice, g.cfg.StopLossPercent, long)
	var stopID string
	err = retry.Do(ctx, g.cfg.LegAttempts, g.cfg.LegDelay, func() error {
		res, serr := g.client.NewCreateOrderService().
			Symbol(symbol).
			Side(exitSide).
			Type(futures.OrderTypeStopMarket).
			StopPrice(stopPrice.String()).
			ClosePosition(true).
			Do(ctx)
		if serr != nil {
			logger.Warnf("[binance] stop-loss leg on %s failed, will retry: %v", symbol, serr)
			return serr
		}
		stopID = formatOrderID(res.OrderID)
		return nil
	})
	if err != nil {
		return nil, g.rollbackEntry(ctx, symbol, side, quantity, entryID, exchange.LegStopLoss, err)
	}

	tgtPrice := targetPrice(entryPrice, targetFraction, long)
	var targetID string
	err = retry.Do(ctx, g.cfg.LegAttempts, g.cfg.LegDelay, func() error {
		res, terr := g.client.NewCreateOrderService().
			Symbol(symbol).
			Side(exitSide).
			Type(futures.OrderTypeLimit).
			Price(tgtPrice.String()).
			Quantity(quantity.String()).
			TimeInForce(futures.TimeInForceTypeGTC).
			Do(ctx)
		if terr != nil {
			logger.Warnf("[binance] target leg on %s failed, will retry: %v", symbol, terr)
			return terr
		}
		targetID = formatOrderID(res.OrderID)
		return nil
	})
	if err != nil {
		return nil, g.rollbackEntry(ctx, symbol, side, quantity, entryID, exchange.LegTarget, err)
	}

	return &exchange.OrderResult{
		Symbol:          symbol,
		Side:            side,
		Quantity:        quantity,
		EntryPrice:      entryPrice,
		EntryOrderID:    entryID,
		StopLossPrice:   stopPrice,
		StopLossOrderID: stopID,
		TargetPrice:     tgtPrice,
		TargetOrderID:   targetID,
	}, nil
}

// rollbackEntry flattens a filled entry whose protective legs could not be
// placed. If even the rollback fails the position is live and unprotected;
// the returned error says so and the caller must alert loudly.
func (g *Gateway) rollbackEntry(ctx context.Context, symbol string, side types.Side, quantity decimal.Decimal, entryID string, leg exchange.OrderLeg, cause error) error {
	logger.Errorf("[binance] %s leg on %s failed after retries, force closing entry %s", leg, symbol, entryID)
	if err := g.ClosePosition(ctx, symbol, quantity, side); err != nil {
		return &exchange.OrderPlacementError{
			Symbol:       symbol,
			Leg:          leg,
			EntryFilled:  true,
			EntryOrderID: entryID,
			RolledBack:   false,
			Err:          fmt.Errorf("%v (rollback also failed: %w)", cause, err),
		}
	}
	return &exchange.OrderPlacementError{
		Symbol:       symbol,
		Leg:          leg,
		EntryFilled:  true,
		EntryOrderID: entryID,
		RolledBack:   true,
		Err:          cause,
	}
}
