package model

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Encode represents text as the sum of its word vectors. Tokens are
// lower-cased before lookup and unknown tokens are dropped, so the
// encoding is an order-insensitive bag of words. Text with no known
// token encodes to the zero vector of the context dimension.
func (m *Model) Encode(text string) []float64 {
	encoding := make([]float64, m.ContextDim())

	for _, token := range m.tokenize(text) {
		pos, err := m.vocab.RowOf(strings.ToLower(token))
		if err != nil {
			continue
		}
		floats.Add(encoding, m.mat.GetRow(pos))
	}

	return encoding
}
