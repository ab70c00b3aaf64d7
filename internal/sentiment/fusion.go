// Package sentiment blends the locally trained classifier's confidence with
// up to two hosted reasoning opinions into one tradable (label, confidence)
// pair.
package sentiment

import (
	"govtrader/internal/gateway/provider"
	"govtrader/internal/types"
)

// Weights drives the blend. The hosted services outweigh the local model by
// design; the local score mostly acts as a tie-breaker and a floor when
// both services are down.
type Weights struct {
	Primary   float64 // first hosted service
	Secondary float64 // second hosted service, also wins the label
	Trained   float64 // local classifier
}

func DefaultWeights() Weights {
	return Weights{Primary: 0.4, Secondary: 0.5, Trained: 0.1}
}

// Fuse combines the trained confidence with whatever hosted opinions are
// present. Label preference: secondary, then primary, then none (an empty
// label tells the caller to skip the proposal).
//
// Confidence: with both opinions present it is the plain weighted sum. With
// one absent, the absent service's weight is redistributed 60% to the
// surviving service and 40% to the trained score. With both absent the
// trained score stands alone.
func Fuse(w Weights, trained float64, primary, secondary *provider.Opinion) types.SentimentResult {
	var label types.SentimentLabel
	switch {
	case secondary != nil:
		label = secondary.Label
	case primary != nil:
		label = primary.Label
	}

	var confidence float64
	switch {
	case primary == nil && secondary == nil:
		confidence = trained
	case primary == nil:
		secondaryW := w.Secondary + w.Primary*0.6
		trainedW := w.Trained + w.Primary*0.4
		confidence = secondary.Score*secondaryW + trained*trainedW
	case secondary == nil:
		primaryW := w.Primary + w.Secondary*0.6
		trainedW := w.Trained + w.Secondary*0.4
		confidence = primary.Score*primaryW + trained*trainedW
	default:
		confidence = primary.Score*w.Primary + secondary.Score*w.Secondary + trained*w.Trained
	}

	return types.SentimentResult{Label: label, Confidence: confidence}
}
