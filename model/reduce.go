package model

import (
	log "github.com/golang/glog"

	"github.com/lightsamurai/DSGeneration/matrix"
	"github.com/lightsamurai/DSGeneration/vocab"
)

// Reduce derives a new, independently owned model holding only the
// given words (plus the sentinels, which are always retained). Rows
// are copied; the column dimension stays the same so every word keeps
// its original encoding. Words not contained in the model are
// ignored; first occurrence decides the new row order.
//
// With normalize set, every column is rescaled to sum to one and the
// result is valid as a bigram model. Without it the reduced matrix
// keeps raw weights and bigram lookups on it fail with
// ErrNotNormalized.
func (m *Model) Reduce(words []string, normalize bool) (*Model, error) {
	keep := make([]string, 0, len(words)+2)
	seen := make(map[string]bool)
	for _, w := range words {
		if !seen[w] && m.vocab.Contains(w) {
			seen[w] = true
			keep = append(keep, w)
		}
	}
	for _, s := range []string{vocab.SentenceStart, vocab.SentenceEnd} {
		if !seen[s] && m.vocab.Contains(s) {
			seen[s] = true
			keep = append(keep, s)
		}
	}
	if len(keep) == 0 {
		return nil, vocab.ErrUnknownWord
	}

	nv := vocab.New()
	nu := make(vocab.Unigrams, len(keep))
	nm := matrix.NewSparse(uint32(len(keep)), m.ContextDim())

	for _, w := range keep {
		p, err := m.unigrams.Prob(w)
		if err != nil {
			return nil, err
		}
		nu[w] = p

		i := nv.Add(w)
		pos, err := m.vocab.RowOf(w)
		if err != nil {
			return nil, err
		}
		for c, val := range m.mat.GetRow(pos) {
			if val != 0 {
				nm.Set(i, uint32(c), val)
			}
		}
	}

	nm.ToCSC()

	if normalize {
		_, ncol := nm.Shape()
		for c := uint32(0); c < ncol; c += 1 {
			if c%1000 == 0 {
				log.V(1).Infof("normalizing column %d of %d", c, ncol)
			}
			sum := nm.ColSum(c)
			if sum > 0 {
				nm.ScaleCol(c, 1.0/sum)
			}
		}
	}

	return New(nm, nv, nu, normalize), nil
}
