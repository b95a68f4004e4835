package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightsamurai/DSGeneration/matrix"
	"github.com/lightsamurai/DSGeneration/vocab"
)

// chainMatrix builds a square transition matrix over v from
// {word, prev} -> weight entries.
func chainMatrix(t *testing.T, v *vocab.Vocab, cells map[[2]string]float64) *matrix.Sparse {
	t.Helper()

	m := matrix.NewSparse(v.Size(), v.Size())
	for key, p := range cells {
		r, err := v.RowOf(key[0])
		assert.NoError(t, err)
		c, err := v.RowOf(key[1])
		assert.NoError(t, err)
		m.Set(r, c, p)
	}
	return m
}

// chainModel builds the START -> dog -> runs -> END chain with
// deterministic transitions.
func chainModel(t *testing.T) *Model {
	t.Helper()

	v := vocab.New()
	for _, w := range []string{vocab.SentenceStart, "dog", "runs", vocab.SentenceEnd} {
		v.Add(w)
	}

	m := chainMatrix(t, v, map[[2]string]float64{
		{"dog", vocab.SentenceStart}:             1,
		{"runs", "dog"}:                          1,
		{vocab.SentenceEnd, "runs"}:              1,
		{vocab.SentenceStart, vocab.SentenceEnd}: 1,
	})

	u := vocab.Unigrams{
		vocab.SentenceStart: 0.1,
		"dog":               0.4,
		"runs":              0.4,
		vocab.SentenceEnd:   0.1,
	}

	return New(m, v, u, true)
}

func TestBigramProb(t *testing.T) {
	m := chainModel(t)

	p, err := m.BigramProb("dog", vocab.SentenceStart)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, p)

	// a genuine zero is returned as zero
	p, err = m.BigramProb("runs", vocab.SentenceStart)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, p)

	_, err = m.BigramProb("cat", vocab.SentenceStart)
	assert.ErrorIs(t, err, vocab.ErrUnknownWord)
	_, err = m.BigramProb("dog", "cat")
	assert.ErrorIs(t, err, vocab.ErrUnknownWord)
}

func TestBigramProbNotNormalized(t *testing.T) {
	m := chainModel(t)

	reduced, err := m.Reduce([]string{"dog", "runs"}, false)
	assert.NoError(t, err)

	_, err = reduced.BigramProb("runs", "dog")
	assert.ErrorIs(t, err, ErrNotNormalized)
	_, err = reduced.SentenceProb([]string{"dog"})
	assert.ErrorIs(t, err, ErrNotNormalized)
	_, err = reduced.Generate(vocab.SentenceStart, nil)
	assert.ErrorIs(t, err, ErrNotNormalized)

	// the vector reading is still valid
	vec, err := reduced.Vector("dog")
	assert.NoError(t, err)
	assert.Len(t, vec, 4)
}

func TestSentenceProb(t *testing.T) {
	m := chainModel(t)

	p, err := m.SentenceProb([]string{"dog", "runs"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, p)

	// a zero-weight bigram zeroes the whole sentence
	p, err = m.SentenceProb([]string{"runs", "dog"})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, p)

	// unknown words are skipped, not scored as zero
	p, err = m.SentenceProb([]string{"dog", "zebra", "runs"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestSentenceProbEmpty(t *testing.T) {
	m := chainModel(t)

	want, err := m.BigramProb(vocab.SentenceEnd, vocab.SentenceStart)
	assert.NoError(t, err)

	got, err := m.SentenceProb(nil)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReduceColumnStochastic(t *testing.T) {
	m := chainModel(t)

	reduced, err := m.Reduce([]string{"dog", "runs"}, true)
	assert.NoError(t, err)
	assert.True(t, reduced.BigramReady())

	// each nonzero column of a normalized model sums to one
	mat := reduced.Matrix()
	nrow, ncol := mat.Shape()
	assert.Equal(t, uint32(4), nrow)
	for c := uint32(0); c < ncol; c += 1 {
		sum := mat.ColSum(c)
		if sum != 0 {
			assert.InDelta(t, 1.0, sum, 1e-12)
		}
	}
}

func TestReduceKeepsSentinels(t *testing.T) {
	m := chainModel(t)

	reduced, err := m.Reduce([]string{"dog"}, false)
	assert.NoError(t, err)

	assert.True(t, reduced.Contains("dog"))
	assert.True(t, reduced.Contains(vocab.SentenceStart))
	assert.True(t, reduced.Contains(vocab.SentenceEnd))
	assert.False(t, reduced.Contains("runs"))
	assert.Equal(t, uint32(4), reduced.ContextDim())
}
