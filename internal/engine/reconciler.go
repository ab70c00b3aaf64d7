package engine

import (
	"context"
	"fmt"
	"time"

	"govtrader/internal/gateway/exchange"
	"govtrader/internal/gateway/notifier"
	"govtrader/internal/logger"
	"govtrader/internal/pkg/symbol"
	"govtrader/internal/store"
	"govtrader/internal/types"
)

// Reconciler aligns the persisted live records with what the exchange
// actually holds. A record whose position vanished (stop or target filled,
// or a manual close) is soft-closed: archived as sold, then dropped from
// the live snapshot so that file only ever lists open trades.
type Reconciler struct {
	gateway   exchange.Gateway
	symbols   *symbol.Table
	live      *store.LiveStore
	analytics *store.Analytics
	notify    notifier.TextNotifier
	now       func() time.Time
}

func NewReconciler(gw exchange.Gateway, symbols *symbol.Table, live *store.LiveStore, analytics *store.Analytics, notify notifier.TextNotifier) *Reconciler {
	return &Reconciler{
		gateway:   gw,
		symbols:   symbols,
		live:      live,
		analytics: analytics,
		notify:    notify,
		now:       time.Now,
	}
}

// Reconcile soft-closes every open record with no matching exchange
// position. When the position fetch fails even after retries the exchange
// state is unknown, so the whole pass is skipped; closing records on a
// guess would orphan real positions.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	positions, err := r.gateway.ListOpenPositions(ctx)
	if err != nil {
		logger.Warnf("reconcile: position fetch failed, skipping pass: %v", err)
		return fmt.Errorf("reconcile: %w", err)
	}

	held := make(map[string]bool, len(positions))
	for _, pos := range positions {
		held[pos.Symbol] = true
	}

	live, err := r.live.All()
	if err != nil {
		return err
	}
	for tradeID, rec := range live {
		if !rec.Open() {
			continue
		}
		sym, ok := r.symbols.Symbol(rec.Coin)
		if !ok {
			logger.Warnf("reconcile: no symbol for live coin %q, leaving record %s alone", rec.Coin, tradeID)
			continue
		}
		if held[sym] {
			continue
		}
		if err := r.softClose(tradeID, sym, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) softClose(tradeID, sym string, rec types.TradeRecord) error {
	rec.Status = types.StatusSold
	if r.analytics != nil {
		if err := r.analytics.ArchiveClosed(tradeID, rec, r.now().UTC()); err != nil {
			logger.Warnf("reconcile: archive %s: %v", tradeID, err)
		}
	}
	if err := r.live.Remove(tradeID); err != nil {
		return err
	}
	notifier.Post(r.notify, fmt.Sprintf("%s WAS SOLD", sym))
	logger.Infof("reconcile: soft-closed trade %s (%s %s)", tradeID, rec.Side, rec.Coin)
	return nil
}
