package model

import (
	"errors"
	"strings"

	"github.com/lightsamurai/DSGeneration/matrix"
	"github.com/lightsamurai/DSGeneration/vocab"
)

var ErrNotNormalized = errors.New("model: bigram weights are not normalized")

// Tokenizer splits raw text into word tokens. Encode lower-cases the
// tokens afterwards, so a tokenizer does not have to.
type Tokenizer func(text string) []string

func defaultTokenizer(text string) []string {
	return strings.Fields(text)
}

// Model holds a DS model: one sparse matrix whose rows are read two
// ways. Row i is the meaning vector of word i, and cell [i, j] is the
// transition weight from the word at row j to the word at row i. The
// bigram reading is only valid while the columns are stochastic, which
// bigramReady tracks; an unnormalized reduced model keeps its vector
// reading but refuses bigram lookups.
type Model struct {
	mat      *matrix.Sparse
	vocab    *vocab.Vocab
	unigrams vocab.Unigrams
	tokenize Tokenizer

	bigramReady bool
}

// New assembles a model from its three components. bigramReady states
// whether the matrix columns sum to one and may be used as transition
// distributions.
func New(mat *matrix.Sparse, vc *vocab.Vocab, un vocab.Unigrams, bigramReady bool) *Model {
	return &Model{
		mat:         mat,
		vocab:       vc,
		unigrams:    un,
		tokenize:    defaultTokenizer,
		bigramReady: bigramReady,
	}
}

// SetTokenizer replaces the whitespace tokenizer used by Encode.
func (m *Model) SetTokenizer(t Tokenizer) {
	if t != nil {
		m.tokenize = t
	}
}

func (m *Model) Matrix() *matrix.Sparse { return m.mat }

func (m *Model) Vocab() *vocab.Vocab { return m.vocab }

func (m *Model) Unigrams() vocab.Unigrams { return m.unigrams }

// BigramReady reports whether the matrix may be read as a bigram
// probability table.
func (m *Model) BigramReady() bool { return m.bigramReady }

// ContextDim returns the column dimension shared by all word vectors.
func (m *Model) ContextDim() uint32 {
	_, c := m.mat.Shape()
	return c
}

func (m *Model) Contains(word string) bool {
	return m.vocab.Contains(word)
}

// Vector returns the meaning vector that represents word.
func (m *Model) Vector(word string) ([]float64, error) {
	pos, err := m.vocab.RowOf(word)
	if err != nil {
		return nil, err
	}
	return m.mat.GetRow(pos), nil
}

// UnigramProb returns the probability of word occurring on its own.
func (m *Model) UnigramProb(word string) (float64, error) {
	return m.unigrams.Prob(word)
}
