// Package model defines the local-model collaborators: the trained
// sentiment classifier, the direction-specific price-target regressors and
// the summarizer. All three are black boxes behind narrow contracts; this
// process never loads weights itself.
package model

import (
	"context"

	"govtrader/internal/types"
)

// SentimentScorer is the locally trained classifier: text in, label plus a
// confidence in [0,1] out. Always available, unlike the hosted services.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (types.SentimentLabel, float64, error)
}

// PricePredictor returns a target-profit percentage (e.g. 5 for 5%) for a
// proposal summary. One instance per direction.
type PricePredictor interface {
	PredictTargetPercent(ctx context.Context, text string) (float64, error)
}

// Summarizer condenses a proposal description before scoring.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
