package reorder

import (
	"errors"
	"sort"
	"strings"

	log "github.com/golang/glog"

	"github.com/lightsamurai/DSGeneration/model"
	"github.com/lightsamurai/DSGeneration/vocab"
)

var ErrExhausted = errors.New("reorder: beam search produced no complete sentence")

const (
	// DefaultBeamWidth bounds how many expansions each partial
	// sequence spawns.
	DefaultBeamWidth = 3

	// once the queue holds more than maxQueueLen partials, one entry
	// is evicted from the first pruneWindow positions; pruning only
	// the front protects long unfinished sequences further back
	maxQueueLen = 10000
	pruneWindow = 1000
)

// a partial sentence and the joint probability of its bigrams so far
type partial struct {
	words []string
	prob  float64
}

// Reconstructor recovers a sentence from its bag-of-words encoding:
// a solver proposes a word multiset for the target vector and a
// breadth-first beam search over orderings picks the sequence with
// the highest joint bigram probability.
type Reconstructor struct {
	Model  *model.Model
	Solver Solver

	// BeamWidth is the number of expansions kept per step; 0 means
	// DefaultBeamWidth.
	BeamWidth int
}

func (r *Reconstructor) width() int {
	if r.BeamWidth > 0 {
		return r.BeamWidth
	}
	return DefaultBeamWidth
}

// Reconstruct encodes text, recovers a candidate bag of words and
// orders it into a sentence.
func (r *Reconstructor) Reconstruct(text string) (string, error) {
	target := r.Model.Encode(text)

	words, residual, err := r.Solver.Solve(r.Model, target)
	if err != nil {
		return "", err
	}
	log.V(1).Infof("reconstructed bag of words: %d candidates, residual %f", len(words), residual)

	return r.Order(words)
}

// Order arranges the word multiset into the most probable sentence
// under the bigram model. An empty multiset yields the empty
// sentence. If every candidate ordering is pruned away before
// completion, Order fails with ErrExhausted.
func (r *Reconstructor) Order(words []string) (string, error) {
	if len(words) == 0 {
		return "", nil
	}

	r.Model.Matrix().ToDOK()

	// seed every candidate sequence with the word most likely to
	// follow the start sentinel; ties keep the first occurrence
	first := ""
	firstProb := float64(-1)
	for _, w := range words {
		p, err := r.Model.BigramProb(w, vocab.SentenceStart)
		if err != nil {
			return "", err
		}
		if p > firstProb {
			firstProb = p
			first = w
		}
	}

	if len(words) == 1 {
		// the seed already is the full sentence
		return first, nil
	}

	queue := []partial{{words: []string{first}, prob: firstProb}}
	var solutions []partial

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// multiset difference: remove one occurrence per used word
		left := make([]string, len(words))
		copy(left, words)
		for _, w := range cur.words {
			for i, l := range left {
				if l == w {
					left = append(left[:i], left[i+1:]...)
					break
				}
			}
		}

		last := cur.words[len(cur.words)-1]

		if len(cur.words) < len(words)-1 {
			expansions, err := r.expand(left, last)
			if err != nil {
				return "", err
			}
			for _, e := range expansions {
				next := make([]string, len(cur.words)+1)
				copy(next, cur.words)
				next[len(cur.words)] = e.words[0]
				queue = append(queue, partial{words: next, prob: cur.prob * e.prob})

				if len(queue) > maxQueueLen {
					queue = pruneFront(queue)
				}
			}
		} else {
			// exactly one word left: close the sentence with it and
			// the end sentinel
			w := left[0]
			p1, err := r.Model.BigramProb(w, last)
			if err != nil {
				return "", err
			}
			p2, err := r.Model.BigramProb(vocab.SentenceEnd, w)
			if err != nil {
				return "", err
			}
			sent := make([]string, len(cur.words)+1)
			copy(sent, cur.words)
			sent[len(cur.words)] = w
			solutions = append(solutions, partial{words: sent, prob: cur.prob * p1 * p2})
		}
	}

	if len(solutions) == 0 {
		return "", ErrExhausted
	}

	bestSent := solutions[0]
	for _, s := range solutions[1:] {
		if s.prob > bestSent.prob {
			bestSent = s
		}
	}
	return strings.Join(bestSent.words, " "), nil
}

// expand ranks the distinct words remaining in left by their bigram
// probability after last and keeps at most beamWidth of them. Each
// returned partial carries a single word.
func (r *Reconstructor) expand(left []string, last string) ([]partial, error) {
	seen := make(map[string]bool, len(left))
	expansions := make([]partial, 0, len(left))
	for _, w := range left {
		if seen[w] {
			continue
		}
		seen[w] = true
		p, err := r.Model.BigramProb(w, last)
		if err != nil {
			return nil, err
		}
		expansions = append(expansions, partial{words: []string{w}, prob: p})
	}

	if len(expansions) > r.width() {
		sort.SliceStable(expansions, func(i, j int) bool {
			return expansions[i].prob > expansions[j].prob
		})
		expansions = expansions[:r.width()]
	}
	return expansions, nil
}

// pruneFront drops the lowest-probability entry among the first
// pruneWindow queue positions and returns the shrunk queue. This is a
// memory bound, not a correctness guarantee: the evicted partial
// could have led to the true optimum.
func pruneFront(queue []partial) []partial {
	window := pruneWindow
	if len(queue) < window {
		window = len(queue)
	}
	lowest := 0
	for i := 1; i < window; i += 1 {
		if queue[i].prob < queue[lowest].prob {
			lowest = i
		}
	}
	return append(queue[:lowest], queue[lowest+1:]...)
}
