package engine

import (
	"context"

	"govtrader/internal/gateway/exchange"
	"govtrader/internal/logger"
	"govtrader/internal/pkg/symbol"
	"govtrader/internal/store"
)

// Monitor is a log-only pass over the open positions: current mark price
// against stop and target, plus whether the protective legs still rest on
// the book. It never mutates state; reconciliation owns that.
type Monitor struct {
	gateway exchange.Gateway
	symbols *symbol.Table
	live    *store.LiveStore
}

func NewMonitor(gw exchange.Gateway, symbols *symbol.Table, live *store.LiveStore) *Monitor {
	return &Monitor{gateway: gw, symbols: symbols, live: live}
}

func (m *Monitor) Run(ctx context.Context) {
	live, err := m.live.All()
	if err != nil {
		logger.Warnf("monitor: read live records: %v", err)
		return
	}
	for tradeID, rec := range live {
		if !rec.Open() {
			continue
		}
		sym, ok := m.symbols.Symbol(rec.Coin)
		if !ok {
			continue
		}
		price, err := m.gateway.CurrentPrice(ctx, sym)
		if err != nil {
			logger.Warnf("monitor: price for %s: %v", sym, err)
			continue
		}
		stop, errStop := m.gateway.CheckOrderStatus(ctx, sym, rec.StopLossOrderID)
		target, errTarget := m.gateway.CheckOrderStatus(ctx, sym, rec.TargetOrderID)
		if errStop != nil || errTarget != nil {
			logger.Warnf("monitor: order status for trade %s: stop=%v target=%v", tradeID, errStop, errTarget)
			continue
		}
		logger.Infof("monitor: trade=%s %s %s price=%s entry=%.4f stop=%.4f(%s) target=%.4f(%s)",
			tradeID, rec.Side, sym, price,
			rec.BuyingPrice, rec.StopLossPrice, stop, rec.TargetPrice, target)
	}
}
