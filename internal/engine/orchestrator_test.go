package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govtrader/internal/config"
	"govtrader/internal/gateway/exchange"
	"govtrader/internal/pkg/symbol"
	"govtrader/internal/store"
	"govtrader/internal/types"
)

const genuineDescription = "the proposal will increase the fee for the pool and reward all users of the protocol"

type fakeGateway struct {
	openCalls  []string
	openSides  []types.Side
	fractions  []float64
	openErr    error
	positions  []exchange.OpenPosition
	listErr    error
	nextID     string
	statusResp exchange.OrderStatus
}

func (g *fakeGateway) CurrentPrice(ctx context.Context, sym string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(7.5), nil
}

func (g *fakeGateway) OpenLong(ctx context.Context, sym string, fraction float64) (*exchange.OrderResult, error) {
	return g.open(sym, types.SideLong, fraction)
}

func (g *fakeGateway) OpenShort(ctx context.Context, sym string, fraction float64) (*exchange.OrderResult, error) {
	return g.open(sym, types.SideShort, fraction)
}

func (g *fakeGateway) open(sym string, side types.Side, fraction float64) (*exchange.OrderResult, error) {
	g.openCalls = append(g.openCalls, sym)
	g.openSides = append(g.openSides, side)
	g.fractions = append(g.fractions, fraction)
	if g.openErr != nil {
		return nil, g.openErr
	}
	id := g.nextID
	if id == "" {
		id = "1001"
	}
	return &exchange.OrderResult{
		Symbol:          sym,
		Side:            side,
		Quantity:        decimal.NewFromInt(1900),
		EntryPrice:      decimal.NewFromFloat(7.5),
		EntryOrderID:    id,
		StopLossPrice:   decimal.NewFromFloat(7.35),
		StopLossOrderID: "2001",
		TargetPrice:     decimal.NewFromFloat(7.9),
		TargetOrderID:   "3001",
	}, nil
}

func (g *fakeGateway) ClosePosition(ctx context.Context, sym string, qty decimal.Decimal, side types.Side) error {
	return nil
}

func (g *fakeGateway) ListOpenPositions(ctx context.Context) ([]exchange.OpenPosition, error) {
	return g.positions, g.listErr
}

func (g *fakeGateway) CheckOrderStatus(ctx context.Context, sym, orderID string) (exchange.OrderStatus, error) {
	if g.statusResp == "" {
		return exchange.OrderStatusResting, nil
	}
	return g.statusResp, nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) SendText(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type stubSummarizer struct{ err error }

func (s stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return "summary of " + text[:10], s.err
}

type stubAssessor struct {
	result types.SentimentResult
	err    error
}

func (s stubAssessor) Assess(ctx context.Context, summary string) (types.SentimentResult, error) {
	return s.result, s.err
}

type stubPredictor struct {
	pct float64
	err error
}

func (s stubPredictor) PredictTargetPercent(ctx context.Context, text string) (float64, error) {
	return s.pct, s.err
}

type stubGuard struct{ block bool }

func (s stubGuard) ShouldBlock(ctx context.Context) bool { return s.block }

type fixture struct {
	orch    *Orchestrator
	gateway *fakeGateway
	notify  *fakeNotifier
	live    *store.LiveStore
	history *store.HistoryStore
}

func newFixture(t *testing.T, assess stubAssessor, guard stubGuard) *fixture {
	t.Helper()
	dir := t.TempDir()
	live := store.NewLiveStore(dir)
	require.NoError(t, live.Init())
	history := store.NewHistoryStore(dir)
	require.NoError(t, history.Load())
	priceCheck := store.NewPriceCheckStore(dir)
	require.NoError(t, priceCheck.Init())

	gw := &fakeGateway{}
	notify := &fakeNotifier{}
	orch := NewOrchestrator(Deps{
		Trading:    config.TradingConfig{TradeAmount: 5000, Leverage: 3, StopLossPercent: 2.0, MaxTrades: 4},
		Sentiment:  config.SentimentConfig{BullishThreshold: 0.80, BearishThreshold: 0.80},
		Gateway:    gw,
		Symbols:    symbol.NewTable(),
		Summarizer: stubSummarizer{},
		Assessor:   assess,
		Bullish:    stubPredictor{pct: 5},
		Bearish:    stubPredictor{pct: 4},
		Guard:      guard,
		Live:       live,
		History:    history,
		PriceCheck: priceCheck,
		Notify:     notify,
	})
	return &fixture{orch: orch, gateway: gw, notify: notify, live: live, history: history}
}

func proposal(coin, id string) types.Proposal {
	return types.Proposal{
		Protocol:       coin,
		PostID:         coin + "--" + id,
		Description:    genuineDescription,
		DiscussionLink: "https://gov.example.org/t/" + id,
	}
}

func TestEvaluateOpensLongOnBullishProposal(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.91}},
		stubGuard{})

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultOpened, out.Result)

	require.Len(t, f.gateway.openCalls, 1)
	assert.Equal(t, "UNIUSDT", f.gateway.openCalls[0])
	assert.Equal(t, types.SideLong, f.gateway.openSides[0])
	assert.InDelta(t, 0.05, f.gateway.fractions[0], 1e-9)

	live, err := f.live.All()
	require.NoError(t, err)
	require.Len(t, live, 1)
	rec := live[out.TradeID]
	assert.Equal(t, "uniswap", rec.Coin)
	assert.Equal(t, types.StatusUnsold, rec.Status)
	assert.Equal(t, types.SideLong, rec.Side)
	assert.InDelta(t, 7.5, rec.BuyingPrice, 1e-9)

	// Post-id trace, new-post notification, trade notification, in order.
	require.Len(t, f.notify.messages, 3)
	assert.Equal(t, "uniswap--123", f.notify.messages[0])
	assert.Contains(t, f.notify.messages[1], "discussion_link")
	assert.Contains(t, f.notify.messages[2], "trade_id")

	assert.True(t, f.history.Seen("uniswap--123"))
}

func TestEvaluateOpensShortOnBearishProposal(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentNegative, Confidence: 0.85}},
		stubGuard{})

	out, err := f.orch.Evaluate(context.Background(), proposal("aave", "77"))
	require.NoError(t, err)
	assert.Equal(t, ResultOpened, out.Result)
	assert.Equal(t, types.SideShort, f.gateway.openSides[0])
	assert.InDelta(t, 0.04, f.gateway.fractions[0], 1e-9)
}

func TestEvaluateSkipsSeenPost(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})
	require.NoError(t, f.history.Add("uniswap--123"))

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Empty(t, f.gateway.openCalls)
	assert.Empty(t, f.notify.messages)
}

func TestEvaluateSkipsLowConfidence(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.62}},
		stubGuard{})

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Empty(t, f.gateway.openCalls)
	// Still remembered so it is not rescored next cycle.
	assert.True(t, f.history.Seen("uniswap--123"))
}

func TestEvaluateSkipsGibberishDescription(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})

	p := proposal("uniswap", "123")
	p.Description = "zxcv qrtx wvut bzzk lmnop qwyx vbnm asdk jklz xcvb"

	out, err := f.orch.Evaluate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Empty(t, f.gateway.openCalls)
}

func TestEvaluateSkipsWhileMarketGuardActive(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{block: true})

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Empty(t, f.gateway.openCalls)
}

func TestEvaluateHonorsPositionCap(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})

	for i, coin := range []string{"aave", "maker", "lido", "curve"} {
		require.NoError(t, f.live.Put(string(rune('a'+i)), types.TradeRecord{
			Coin: coin, PostID: coin + "--1", Status: types.StatusUnsold,
		}))
	}

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Contains(t, out.Reason, "cap")
	assert.Empty(t, f.gateway.openCalls)
	// The trace and the new-post notification still went out before admission.
	require.Len(t, f.notify.messages, 2)
}

func TestEvaluateSkipsCoinWithOpenPosition(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})

	require.NoError(t, f.live.Put("9", types.TradeRecord{
		Coin: "uniswap", PostID: "uniswap--1", Status: types.StatusUnsold,
	}))

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.Contains(t, out.Reason, "uniswap")
	assert.Empty(t, f.gateway.openCalls)
}

func TestEvaluateSoldRecordDoesNotBlockCoin(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})

	require.NoError(t, f.live.Put("9", types.TradeRecord{
		Coin: "uniswap", PostID: "uniswap--1", Status: types.StatusSold,
	}))

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.NoError(t, err)
	assert.Equal(t, ResultOpened, out.Result)
}

func TestEvaluateUnknownCoinSkippedAndRemembered(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})

	out, err := f.orch.Evaluate(context.Background(), proposal("dogwifhat", "5"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, out.Result)
	assert.True(t, f.history.Seen("dogwifhat--5"))
	assert.Empty(t, f.gateway.openCalls)
	// The post-id trace fires for every new post, traded or not.
	require.Len(t, f.notify.messages, 1)
	assert.Equal(t, "dogwifhat--5", f.notify.messages[0])
}

func TestEvaluateOrderFailureNotifies(t *testing.T) {
	f := newFixture(t,
		stubAssessor{result: types.SentimentResult{Label: types.SentimentPositive, Confidence: 0.95}},
		stubGuard{})
	f.gateway.openErr = errors.New("insufficient margin")

	out, err := f.orch.Evaluate(context.Background(), proposal("uniswap", "123"))
	require.Error(t, err)
	assert.Equal(t, ResultFailed, out.Result)

	live, lerr := f.live.All()
	require.NoError(t, lerr)
	assert.Empty(t, live)

	var sawFailure bool
	for _, msg := range f.notify.messages {
		if strings.Contains(msg, "failed") {
			sawFailure = true
		}
	}
	assert.True(t, sawFailure)
}
