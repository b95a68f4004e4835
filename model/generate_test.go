package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/lightsamurai/DSGeneration/vocab"
)

func TestGenerateChain(t *testing.T) {
	m := chainModel(t)

	// every transition is deterministic, so any seed walks the chain
	sentence, err := m.Generate(vocab.SentenceStart, rand.NewSource(1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"dog", "runs"}, sentence)
}

func TestGenerateFromEndSentinel(t *testing.T) {
	m := chainModel(t)

	// the end sentinel terminates generation before anything is
	// sampled, even though p(START|END) > 0 in this model
	sentence, err := m.Generate(vocab.SentenceEnd, rand.NewSource(1))
	assert.NoError(t, err)
	assert.Empty(t, sentence)
	assert.NotContains(t, sentence, vocab.SentenceStart)
}

func TestGenerateUnknownStart(t *testing.T) {
	m := chainModel(t)

	_, err := m.Generate("zebra", rand.NewSource(1))
	assert.ErrorIs(t, err, vocab.ErrUnknownWord)
}

func TestGenerateLowercasesStart(t *testing.T) {
	m := chainModel(t)

	sentence, err := m.Generate("Dog", rand.NewSource(1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"runs"}, sentence)
}

func TestGenerateSeededDeterminism(t *testing.T) {
	m := chainModel(t)

	a, err := m.Generate(vocab.SentenceStart, rand.NewSource(42))
	assert.NoError(t, err)
	b, err := m.Generate(vocab.SentenceStart, rand.NewSource(42))
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

// isolatedModel has a word with an all-zero transition column, which
// forces the unigram backoff path.
func isolatedModel(t *testing.T) *Model {
	t.Helper()

	v := vocab.New()
	for _, w := range []string{vocab.SentenceStart, "island", vocab.SentenceEnd} {
		v.Add(w)
	}

	m := chainMatrix(t, v, map[[2]string]float64{
		{"island", vocab.SentenceStart}: 1,
		// no transitions out of "island": its column stays zero
	})

	u := vocab.Unigrams{
		vocab.SentenceStart: 0.3,
		"island":            0.1,
		vocab.SentenceEnd:   0.6,
	}

	return New(m, v, u, true)
}

func TestGenerateUnigramBackoff(t *testing.T) {
	m := isolatedModel(t)

	for seed := uint64(0); seed < 20; seed += 1 {
		sentence, err := m.Generate(vocab.SentenceStart, rand.NewSource(seed))
		assert.NoError(t, err)

		// the re-roll rule keeps the start sentinel out of the output
		assert.NotContains(t, sentence, vocab.SentenceStart)
		assert.NotContains(t, sentence, vocab.SentenceEnd)
		for _, w := range sentence {
			assert.True(t, m.Contains(w))
		}
	}
}
