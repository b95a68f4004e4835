package model

import (
	"math"

	log "github.com/golang/glog"

	"github.com/lightsamurai/DSGeneration/matrix"
)

// PPMI builds a new model whose matrix holds the positive pointwise
// mutual information of each word pair, computed from the transition
// weights and the unigram table. The vocabulary and unigram table are
// shared with the receiver. PPMI weights are not probabilities, so
// the result is not valid as a bigram model.
func (m *Model) PPMI() (*Model, error) {
	nrow, ncol := m.mat.Shape()
	pm := matrix.NewSparse(nrow, ncol)

	m.mat.ToCSC()

	for i, w1 := range m.vocab.Words() {
		if i%500 == 0 {
			log.V(1).Infof("ppmi: %d words done", i)
		}
		posc, err := m.vocab.RowOf(w1)
		if err != nil {
			return nil, err
		}
		probs := m.mat.GetCol(posc)

		for _, w2 := range m.vocab.Words() {
			pw, err := m.unigrams.Prob(w2)
			if err != nil {
				return nil, err
			}
			posw, err := m.vocab.RowOf(w2)
			if err != nil {
				return nil, err
			}
			pcw := probs[posw]

			if pw == 0 || pcw == 0 {
				continue
			}
			ppmi := math.Log2(pcw / pw)
			if ppmi <= 0 || math.IsInf(ppmi, 0) || math.IsNaN(ppmi) {
				continue
			}
			pm.Set(posc, posw, ppmi)
		}
	}

	return New(pm, m.vocab, m.unigrams, false), nil
}
