package vocab

import "fmt"

// Unigrams maps each word to its unigram probability. It is used only
// as a fallback sampling distribution and is never renormalized on
// demand.
type Unigrams map[string]float64

// Prob returns the probability of word occurring
func (u Unigrams) Prob(word string) (float64, error) {
	p, ok := u[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return p, nil
}
