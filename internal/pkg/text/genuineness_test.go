package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidityScore(t *testing.T) {
	assert.Zero(t, ValidityScore(""))
	assert.Zero(t, ValidityScore("!!! ... ---"))

	// All common words.
	assert.InDelta(t, 1.0, ValidityScore("the people will vote for the new proposal"), 1e-9)

	// Half gibberish.
	score := ValidityScore("the proposal zxqv wbbt")
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestGenuineAcceptsOrdinaryProse(t *testing.T) {
	// Long-form forum prose must clear the gate comfortably, not sit at
	// the boundary.
	prose := "The foundation published an extensive document describing how " +
		"validators operate their infrastructure and how delegation rewards " +
		"are distributed across the network each epoch"
	assert.True(t, Genuine(prose))
	assert.Greater(t, ValidityScore(prose), 0.9)
}

func TestGenuine(t *testing.T) {
	assert.True(t, Genuine("increase the fee for the pool and give the reward to all users"))
	assert.False(t, Genuine("zxqv wbbt qpltx mmzr kkjh wqpx"))
	// Exactly half valid is not genuine.
	assert.False(t, Genuine("the proposal zxqv wbbt"))
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, []string{"vote", "yes", "now"}, tokenize("Vote, yes! Now."))
}
