// Package engine turns scored proposals into exchange orders and keeps the
// persisted position state honest against the exchange.
package engine

import (
	"context"
	"fmt"
	"time"

	"govtrader/internal/config"
	"govtrader/internal/gateway/exchange"
	"govtrader/internal/gateway/notifier"
	"govtrader/internal/logger"
	"govtrader/internal/model"
	"govtrader/internal/pkg/symbol"
	"govtrader/internal/pkg/text"
	"govtrader/internal/store"
	"govtrader/internal/types"
)

// Assessor produces the fused sentiment for a proposal summary.
type Assessor interface {
	Assess(ctx context.Context, summary string) (types.SentimentResult, error)
}

// MarketGuard blocks trading during broad-market distress.
type MarketGuard interface {
	ShouldBlock(ctx context.Context) bool
}

type Result string

const (
	ResultSkipped Result = "skipped"
	ResultOpened  Result = "opened"
	ResultFailed  Result = "failed"
)

// Outcome reports what Evaluate did with one proposal.
type Outcome struct {
	Result  Result
	Reason  string
	TradeID string
}

func skipped(reason string) Outcome { return Outcome{Result: ResultSkipped, Reason: reason} }

// Orchestrator runs one proposal through summarization, sentiment fusion,
// the admission gates and finally order placement.
type Orchestrator struct {
	trading   config.TradingConfig
	sentiment config.SentimentConfig

	gateway    exchange.Gateway
	symbols    *symbol.Table
	summarizer model.Summarizer
	assessor   Assessor
	bullish    model.PricePredictor
	bearish    model.PricePredictor
	guard      MarketGuard

	live       *store.LiveStore
	history    *store.HistoryStore
	priceCheck *store.PriceCheckStore
	analytics  *store.Analytics

	notify notifier.TextNotifier
	now    func() time.Time
}

// Deps bundles the orchestrator's collaborators. Analytics may be nil.
type Deps struct {
	Trading    config.TradingConfig
	Sentiment  config.SentimentConfig
	Gateway    exchange.Gateway
	Symbols    *symbol.Table
	Summarizer model.Summarizer
	Assessor   Assessor
	Bullish    model.PricePredictor
	Bearish    model.PricePredictor
	Guard      MarketGuard
	Live       *store.LiveStore
	History    *store.HistoryStore
	PriceCheck *store.PriceCheckStore
	Analytics  *store.Analytics
	Notify     notifier.TextNotifier
}

func NewOrchestrator(d Deps) *Orchestrator {
	return &Orchestrator{
		trading:    d.Trading,
		sentiment:  d.Sentiment,
		gateway:    d.Gateway,
		symbols:    d.Symbols,
		summarizer: d.Summarizer,
		assessor:   d.Assessor,
		bullish:    d.Bullish,
		bearish:    d.Bearish,
		guard:      d.Guard,
		live:       d.Live,
		history:    d.History,
		priceCheck: d.PriceCheck,
		analytics:  d.Analytics,
		notify:     d.Notify,
		now:        time.Now,
	}
}

// Evaluate runs one proposal through the full pipeline. Every proposal is
// remembered in history after scoring so it is never evaluated twice, no
// matter whether a trade came out of it.
func (o *Orchestrator) Evaluate(ctx context.Context, p types.Proposal) (Outcome, error) {
	if o.history.Seen(p.PostID) {
		return skipped("already evaluated"), nil
	}

	// Trace every new post before any gate runs; the channel log is the
	// audit trail for posts that never became trades.
	notifier.Post(o.notify, p.PostID)

	coin := p.Coin()
	sym, ok := o.symbols.Symbol(coin)
	if !ok {
		if err := o.history.Add(p.PostID); err != nil {
			return Outcome{}, err
		}
		return skipped(fmt.Sprintf("no futures symbol for coin %q", coin)), nil
	}

	genuine := text.Genuine(p.Description)

	summary, err := o.summarizer.Summarize(ctx, p.Description)
	if err != nil {
		return Outcome{Result: ResultFailed, Reason: "summarize"}, fmt.Errorf("engine: summarize %s: %w", p.PostID, err)
	}

	result, err := o.assessor.Assess(ctx, summary)
	if err != nil {
		return Outcome{Result: ResultFailed, Reason: "sentiment"}, fmt.Errorf("engine: sentiment %s: %w", p.PostID, err)
	}

	if err := o.history.Add(p.PostID); err != nil {
		return Outcome{}, err
	}

	logger.Infof("engine: %s coin=%s label=%s confidence=%.3f genuine=%v",
		p.PostID, coin, result.Label, result.Confidence, genuine)

	var side types.Side
	switch {
	case result.Label == types.SentimentPositive && result.Confidence >= o.sentiment.BullishThreshold:
		side = types.SideLong
	case result.Label == types.SentimentNegative && result.Confidence >= o.sentiment.BearishThreshold:
		side = types.SideShort
	default:
		return skipped("sentiment below threshold"), nil
	}

	if !genuine {
		return skipped("description failed genuineness check"), nil
	}
	if o.guard.ShouldBlock(ctx) {
		return skipped("market guard active"), nil
	}

	predictor := o.bullish
	if side == types.SideShort {
		predictor = o.bearish
	}
	targetPct, err := predictor.PredictTargetPercent(ctx, summary)
	if err != nil {
		return Outcome{Result: ResultFailed, Reason: "target prediction"}, fmt.Errorf("engine: target %s: %w", p.PostID, err)
	}

	o.notifyNewPost(p, coin, result, targetPct, summary)

	admitted, reason, err := o.admit(coin)
	if err != nil {
		return Outcome{}, err
	}
	if !admitted {
		return skipped(reason), nil
	}

	return o.open(ctx, p, coin, sym, side, targetPct, result)
}

// admit applies the position cap and the one-position-per-coin rule.
func (o *Orchestrator) admit(coin string) (bool, string, error) {
	n, err := o.live.Count()
	if err != nil {
		return false, "", err
	}
	if n >= o.trading.MaxTrades {
		return false, fmt.Sprintf("position cap reached (%d)", o.trading.MaxTrades), nil
	}
	busy, err := o.live.HasCoin(coin)
	if err != nil {
		return false, "", err
	}
	if busy {
		return false, fmt.Sprintf("position already open on %s", coin), nil
	}
	return true, "", nil
}

func (o *Orchestrator) open(ctx context.Context, p types.Proposal, coin, sym string, side types.Side, targetPct float64, sent types.SentimentResult) (Outcome, error) {
	// The predictor yields whole percents; the gateway wants a fraction.
	fraction := targetPct / 100

	var res *exchange.OrderResult
	var err error
	if side == types.SideLong {
		res, err = o.gateway.OpenLong(ctx, sym, fraction)
	} else {
		res, err = o.gateway.OpenShort(ctx, sym, fraction)
	}
	if err != nil {
		notifier.Post(o.notify, fmt.Sprintf("order placement failed for %s: %v", coin, err))
		return Outcome{Result: ResultFailed, Reason: "order placement"}, fmt.Errorf("engine: open %s %s: %w", side, sym, err)
	}

	openedAt := o.now().UTC()
	tradeID := res.EntryOrderID
	rec := types.TradeRecord{
		Coin:            coin,
		PostID:          p.PostID,
		Description:     p.Description,
		BuyingPrice:     res.EntryPrice.InexactFloat64(),
		BuyingTime:      openedAt.Format("2006-01-02 15:04:05"),
		StopLossPrice:   res.StopLossPrice.InexactFloat64(),
		Side:            side,
		StopLossOrderID: res.StopLossOrderID,
		TargetOrderID:   res.TargetOrderID,
		TargetPrice:     res.TargetPrice.InexactFloat64(),
		Status:          types.StatusUnsold,
	}
	if err := o.live.Put(tradeID, rec); err != nil {
		return Outcome{Result: ResultFailed, Reason: "persist"}, err
	}

	if err := o.priceCheck.Record(tradeID, coin, openedAt, rec.BuyingPrice); err != nil {
		logger.Warnf("engine: price check record for %s: %v", tradeID, err)
	}
	o.saveSnapshot(tradeID, p, coin, sent, rec.BuyingPrice, openedAt)
	o.notifyTrade(coin, side, rec, tradeID, res)

	logger.Infof("engine: opened %s %s trade=%s entry=%s stop=%s target=%s qty=%s",
		side, sym, tradeID, res.EntryPrice, res.StopLossPrice, res.TargetPrice, res.Quantity)
	return Outcome{Result: ResultOpened, TradeID: tradeID}, nil
}

// saveSnapshot is best-effort: analytics must never block trading.
func (o *Orchestrator) saveSnapshot(tradeID string, p types.Proposal, coin string, sent types.SentimentResult, entry float64, openedAt time.Time) {
	if o.analytics == nil {
		return
	}
	err := o.analytics.SaveSnapshot(store.TradeSnapshot{
		TradeID:        tradeID,
		PostID:         p.PostID,
		Coin:           coin,
		Description:    p.Description,
		SentimentScore: sent.Confidence,
		EntryPrice:     entry,
		OpenedAt:       openedAt,
	})
	if err != nil {
		logger.Warnf("engine: analytics snapshot for %s: %v", tradeID, err)
		notifier.Post(o.notify, fmt.Sprintf("analytics save failed for %s: %v", tradeID, err))
	}
}

// notifyNewPost fires once per post: only when no live position already
// references it. The discussion link falls back to the summary when the
// feed has none.
func (o *Orchestrator) notifyNewPost(p types.Proposal, coin string, sent types.SentimentResult, targetPct float64, summary string) {
	alreadyLive, err := o.live.HasPostID(p.PostID)
	if err != nil {
		logger.Warnf("engine: live lookup for %s: %v", p.PostID, err)
		return
	}
	if alreadyLive {
		return
	}
	link := p.DiscussionLink
	if link == "" {
		link = summary
	}
	notifier.PostFields(o.notify, []notifier.Field{
		{Key: "discussion_link", Value: link},
		{Key: "coin", Value: coin},
		{Key: "post_id", Value: p.PostID},
		{Key: "sentiment", Value: string(sent.Label)},
		{Key: "sentiment_score", Value: sent.Confidence},
		{Key: "target_percent", Value: targetPct},
	})
}

func (o *Orchestrator) notifyTrade(coin string, side types.Side, rec types.TradeRecord, tradeID string, res *exchange.OrderResult) {
	notifier.PostFields(o.notify, []notifier.Field{
		{Key: "coin", Value: coin},
		{Key: "trade_type", Value: string(side)},
		{Key: "buying_price", Value: rec.BuyingPrice},
		{Key: "stop_loss_price", Value: rec.StopLossPrice},
		{Key: "target_price", Value: rec.TargetPrice},
		{Key: "trade_id", Value: tradeID},
		{Key: "stop_loss_order_id", Value: rec.StopLossOrderID},
		{Key: "target_order_id", Value: rec.TargetOrderID},
		{Key: "quantity", Value: res.Quantity.String()},
	})
}
