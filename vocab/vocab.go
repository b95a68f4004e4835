package vocab

import (
	"errors"
	"fmt"
)

// sentence boundary sentinels; the literals match persisted snapshots
const (
	SentenceStart = "START$_"
	SentenceEnd   = "END$_"
)

var ErrUnknownWord = errors.New("vocab: word not in vocabulary")

// Vocab is the bijective mapping between words and matrix row
// positions. Rows are assigned in insertion order, so Words() is
// stable within a process run.
type Vocab struct {
	rows  map[string]uint32
	words []string
}

func New() *Vocab {
	return &Vocab{rows: make(map[string]uint32)}
}

// Add assigns the next free row to word and returns it. Adding an
// existing word returns its current row.
func (v *Vocab) Add(word string) uint32 {
	if r, ok := v.rows[word]; ok {
		return r
	}
	r := uint32(len(v.words))
	v.rows[word] = r
	v.words = append(v.words, word)
	return r
}

func (v *Vocab) Contains(word string) bool {
	_, ok := v.rows[word]
	return ok
}

// RowOf returns the row assigned to word
func (v *Vocab) RowOf(word string) (uint32, error) {
	r, ok := v.rows[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return r, nil
}

// Words returns all vocabulary words in row order.
func (v *Vocab) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

func (v *Vocab) Size() uint32 {
	return uint32(len(v.words))
}
