package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightsamurai/DSGeneration/vocab"
)

func TestGreedySolveRecoversBag(t *testing.T) {
	m := chainModel(t)

	words, residual, err := Greedy{}.Solve(m, m.Encode("dog runs"))
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"dog", "runs"}, words)
	assert.InDelta(t, 0.0, residual, 1e-12)
}

func TestGreedySolveZeroTarget(t *testing.T) {
	m := chainModel(t)

	words, residual, err := Greedy{}.Solve(m, make([]float64, int(m.ContextDim())))
	assert.NoError(t, err)
	assert.Empty(t, words)
	assert.Equal(t, 0.0, residual)
}

func TestGreedySolveNeverPicksSentinels(t *testing.T) {
	m := chainModel(t)

	// the start sentinel's own vector as target must not pull the
	// sentinel into the bag
	vec, err := m.Vector(vocab.SentenceStart)
	assert.NoError(t, err)

	words, _, err := Greedy{MaxWords: 5}.Solve(m, vec)
	assert.NoError(t, err)
	assert.NotContains(t, words, vocab.SentenceStart)
	assert.NotContains(t, words, vocab.SentenceEnd)
}
