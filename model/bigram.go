package model

import (
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lightsamurai/DSGeneration/vocab"
)

// BigramProb returns the probability p(word|prev). The raw cell is
// returned without smoothing, so a genuine zero stays zero.
func (m *Model) BigramProb(word, prev string) (float64, error) {
	if !m.bigramReady {
		return 0, ErrNotNormalized
	}
	pos, err := m.vocab.RowOf(word)
	if err != nil {
		return 0, err
	}
	prevPos, err := m.vocab.RowOf(prev)
	if err != nil {
		return 0, err
	}
	return m.mat.Get(pos, prevPos), nil
}

// SentenceProb returns the probability of the sentence under the
// bigram model, with the start sentinel prefixed and the end sentinel
// suffixed. Words outside the vocabulary are skipped, not scored as
// zero.
func (m *Model) SentenceProb(sentence []string) (float64, error) {
	prob := 1.0
	prev := vocab.SentenceStart

	for _, word := range sentence {
		if !m.vocab.Contains(word) {
			continue
		}
		p, err := m.BigramProb(word, prev)
		if err != nil {
			return 0, err
		}
		prob *= p
		prev = word
	}

	p, err := m.BigramProb(vocab.SentenceEnd, prev)
	if err != nil {
		return 0, err
	}
	return prob * p, nil
}

// Generate samples a sentence from the bigram transition
// distributions, starting after start. Each step draws the next word
// from the full column of transition weights out of the current word.
// A word that was never observed as a predecessor has a zero column;
// the sampler then backs off to the unigram table, re-rolling while
// the draw lands on the start sentinel. The end sentinel stops
// generation and is excluded from the result. src may be nil to use
// the global source; pass a seeded source for reproducible output.
func (m *Model) Generate(start string, src rand.Source) ([]string, error) {
	if !m.bigramReady {
		return nil, ErrNotNormalized
	}

	if start != vocab.SentenceStart && start != vocab.SentenceEnd {
		start = strings.ToLower(start)
	}
	if _, err := m.vocab.RowOf(start); err != nil {
		return nil, err
	}

	words := m.vocab.Words()
	var sentence []string

	word := start
	for word != vocab.SentenceEnd {
		pos, err := m.vocab.RowOf(word)
		if err != nil {
			return nil, err
		}
		col := m.mat.GetCol(pos)

		if floats.Sum(col) == 0 {
			// never seen as a first word in a bigram; back off to
			// the unigram distribution
			weights := make([]float64, len(words))
			for i, w := range words {
				p, err := m.unigrams.Prob(w)
				if err != nil {
					return nil, err
				}
				weights[i] = p
			}
			dist := distuv.NewCategorical(weights, src)
			word = words[int(dist.Rand())]
			for word == vocab.SentenceStart {
				// the start sentinel must never appear mid-sentence
				word = words[int(dist.Rand())]
			}
		} else {
			dist := distuv.NewCategorical(col, src)
			word = words[int(dist.Rand())]
		}

		if word == vocab.SentenceEnd {
			break
		}
		sentence = append(sentence, word)
	}

	return sentence, nil
}
