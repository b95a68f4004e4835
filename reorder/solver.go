package reorder

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lightsamurai/DSGeneration/model"
	"github.com/lightsamurai/DSGeneration/vocab"
)

// Solver recovers a bag of words whose vectors approximately sum to
// target. The residual reports how much of the target is left
// unexplained; the reconstructor only consumes the word multiset.
type Solver interface {
	Solve(m *model.Model, target []float64) (words []string, residual float64, err error)
}

// Greedy is a reference solver: it repeatedly adds the vocabulary
// word whose vector brings the running sum closest to the target and
// stops when no word improves the residual norm. Sentinels are never
// candidates. The same word may be picked more than once, so the
// result is a multiset.
type Greedy struct {
	// MaxWords caps the multiset size; 0 means DefaultMaxWords.
	MaxWords int
}

const DefaultMaxWords = 10

func (g Greedy) Solve(m *model.Model, target []float64) ([]string, float64, error) {
	maxWords := g.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	residual := make([]float64, len(target))
	copy(residual, target)
	best := floats.Norm(residual, 2)

	var words []string
	for len(words) < maxWords {
		picked := ""
		for _, w := range m.Vocab().Words() {
			if w == vocab.SentenceStart || w == vocab.SentenceEnd {
				continue
			}
			vec, err := m.Vector(w)
			if err != nil {
				return nil, 0, err
			}
			d := float64(0)
			for i := range residual {
				diff := residual[i] - vec[i]
				d += diff * diff
			}
			d = math.Sqrt(d)
			if d < best {
				best = d
				picked = w
			}
		}
		if picked == "" {
			break
		}
		vec, err := m.Vector(picked)
		if err != nil {
			return nil, 0, err
		}
		floats.Sub(residual, vec)
		words = append(words, picked)
	}

	return words, best, nil
}
