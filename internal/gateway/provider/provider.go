package provider

import (
	"context"

	"govtrader/internal/types"
)

// Opinion is one hosted reasoning service's verdict on a proposal summary.
type Opinion struct {
	Label types.SentimentLabel
	Score float64
}

// ReasoningProvider asks a hosted model for a sentiment opinion. A provider
// that cannot produce a valid opinion after its retry budget returns an
// error; the fusion engine treats that as an absent opinion, never as a
// hard failure.
type ReasoningProvider interface {
	ID() string
	Predict(ctx context.Context, text string) (*Opinion, error)
}

// sentimentPrompt is sent verbatim as the system message. The braces-only
// output contract is what the parser depends on.
const sentimentPrompt = `You are a financial and trading expert. Based on the content of this text, evaluate its sentiment and immediate impact on market prices.
Output your result in JSON format as {'positive': x} or {'negative': x}, where:
- x represents the score that can be in between 0 to 1.
Output only the JSON object.`
