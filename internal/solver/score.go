// internal/solver/score.go
//
// Word scoring for guess selection.
// Responsibilities:
//   - Positional letter frequency over the live candidate set.
//   - Per-position entropy p*(1-p), maximized when a letter splits the
//     remaining candidates evenly.
//   - Whole-word score with a soft penalty for repeated letters.
//
// Scoring is a pure query against whatever pool it is handed; it never
// caches, so it always reflects the latest reduction.

package solver

import (
	"math"
	"strings"
)

// repeatPenalty discounts words that spend two positions on the same
// letter; such guesses reveal less per turn.
const repeatPenalty = 0.9

// frequency returns the fraction of pool words whose letter at pos is c.
func frequency(pool []string, c byte, pos int) float64 {
	if len(pool) == 0 {
		return 0
	}
	n := 0
	for _, w := range pool {
		if w[pos] == c {
			n++
		}
	}
	return float64(n) / float64(len(pool))
}

// entropy scores a single (letter, position) pair against pool.
// p*(1-p) peaks at p=0.5: letters that cut the pool in half are worth most.
func entropy(pool []string, c byte, pos int) float64 {
	p := frequency(pool, c, pos)
	return p * (1 - p)
}

// Score returns the desirability of word as the next guess, measured
// against pool. Words containing any repeated letter are discounted.
func Score(word string, pool []string) float64 {
	var sum float64
	repeated := false
	for i := 0; i < len(word); i++ {
		sum += entropy(pool, word[i], i)
		if strings.Count(word, string(word[i])) > 1 {
			repeated = true
		}
	}
	if repeated {
		sum *= repeatPenalty
	}
	return sum
}

// bestIndex returns the index of the first maximum-scoring word in pool,
// scored against the words in against. Returns -1 for an empty pool.
// Strict > keeps the pick stable for a fixed pool ordering.
func bestIndex(pool, against []string) int {
	best := -1
	bestScore := math.Inf(-1)
	for i, w := range pool {
		if sc := Score(w, against); sc > bestScore {
			best, bestScore = i, sc
		}
	}
	return best
}
