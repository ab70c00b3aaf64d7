package sentiment

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"govtrader/internal/gateway/provider"
	"govtrader/internal/logger"
	"govtrader/internal/model"
	"govtrader/internal/pkg/circuit"
	"govtrader/internal/types"
)

// Engine produces the fused sentiment for a summary. The trained classifier
// is mandatory; each hosted service sits behind its own circuit breaker and
// is consulted best-effort.
type Engine struct {
	scorer    model.SentimentScorer
	primary   provider.ReasoningProvider
	secondary provider.ReasoningProvider
	weights   Weights

	primaryBreaker   *circuit.Breaker
	secondaryBreaker *circuit.Breaker
}

func NewEngine(scorer model.SentimentScorer, primary, secondary provider.ReasoningProvider, w Weights) *Engine {
	return &Engine{
		scorer:           scorer,
		primary:          primary,
		secondary:        secondary,
		weights:          w,
		primaryBreaker:   circuit.NewBreaker(primary.ID(), breakerThreshold, breakerCooldown),
		secondaryBreaker: circuit.NewBreaker(secondary.ID(), breakerThreshold, breakerCooldown),
	}
}

const (
	breakerThreshold = 3
	breakerCooldown  = 5 * time.Minute
)

// Assess scores the summary with the trained classifier, fans out to both
// hosted services concurrently and fuses whatever came back. Only the
// trained classifier can fail the call.
func (e *Engine) Assess(ctx context.Context, summary string) (types.SentimentResult, error) {
	_, trained, err := e.scorer.Score(ctx, summary)
	if err != nil {
		return types.SentimentResult{}, err
	}

	var primaryOp, secondaryOp *provider.Opinion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primaryOp = e.consult(gctx, e.primary, e.primaryBreaker, summary)
		return nil
	})
	g.Go(func() error {
		secondaryOp = e.consult(gctx, e.secondary, e.secondaryBreaker, summary)
		return nil
	})
	_ = g.Wait()

	result := Fuse(e.weights, trained, primaryOp, secondaryOp)
	logger.Infof("sentiment: trained=%.3f primary=%s secondary=%s -> label=%s confidence=%.3f",
		trained, describeOpinion(primaryOp), describeOpinion(secondaryOp), result.Label, result.Confidence)
	return result, nil
}

// consult returns nil when the breaker is open or the service errors out;
// the fusion step treats nil as an absent opinion.
func (e *Engine) consult(ctx context.Context, p provider.ReasoningProvider, b *circuit.Breaker, summary string) *provider.Opinion {
	if !b.Allow() {
		logger.Warnf("sentiment: %s skipped, breaker open", p.ID())
		return nil
	}
	op, err := p.Predict(ctx, summary)
	if err != nil {
		b.RecordFailure()
		logger.Warnf("sentiment: %s failed: %v", p.ID(), err)
		return nil
	}
	b.RecordSuccess()
	return op
}

func describeOpinion(op *provider.Opinion) string {
	if op == nil {
		return "absent"
	}
	return string(op.Label)
}
