package types

import "time"

// Proposal is one governance post pulled from a protocol's discussion feed.
// Immutable once produced by the feed provider.
type Proposal struct {
	Protocol       string    `json:"protocol"`
	PostID         string    `json:"post_id"`
	Description    string    `json:"description"`
	DiscussionLink string    `json:"discussion_link"`
	CreatedAt      time.Time `json:"created_at"`
}

// Coin derives the coin name from a post id shaped like "uniswap--1234".
func (p Proposal) Coin() string {
	for i := 0; i+1 < len(p.PostID); i++ {
		if p.PostID[i] == '-' && p.PostID[i+1] == '-' {
			return p.PostID[:i]
		}
	}
	return p.PostID
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentResult is the fused (label, confidence) pair for one proposal.
// Computed per proposal and never persisted on its own.
type SentimentResult struct {
	Label      SentimentLabel
	Confidence float64
}

// Actionable reports whether the label can open a position at all.
func (s SentimentResult) Actionable() bool {
	return s.Label == SentimentPositive || s.Label == SentimentNegative
}
