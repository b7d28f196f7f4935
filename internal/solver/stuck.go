// internal/solver/stuck.go
//
// Disambiguation guess for the "one slot left" situation: all positions
// but one are confirmed and several candidates differ only in that slot
// (think _RAIN with BRAIN/DRAIN/TRAIN/GRAIN still alive). Guessing from
// the narrowed set burns a turn per candidate; instead, spend one guess
// on a word that tests as many of the still-possible letters as it can,
// even if that word cannot itself be the solution.

package solver

import (
	"math"
	"strings"
)

// stuckRepeatPenalty is harsher than the scorer's: a repeated letter in
// a disambiguation guess wastes a slot that could test a distinct
// candidate letter.
const stuckRepeatPenalty = 0.1

// stuckGuess returns the full-dictionary word covering the most letters
// that could still fill the single unresolved position. The caller has
// already checked that exactly wordLength-1 states are correct.
func (s *Solver) stuckGuess(states []State) string {
	open := 0
	for i, st := range states {
		if st != StateCorrect {
			open = i
			break
		}
	}

	// Letters that could still complete the solution.
	possible := make(map[byte]bool, len(s.candidates))
	for _, w := range s.candidates {
		possible[w[open]] = true
	}

	best := 0
	bestScore := math.Inf(-1)
	for i, w := range s.dictionary {
		var sc float64
		repeated := false // fresh per word
		for j := 0; j < len(w); j++ {
			if possible[w[j]] {
				sc++
			}
			if strings.Count(w, string(w[j])) > 1 {
				repeated = true
			}
		}
		if repeated {
			sc *= stuckRepeatPenalty
		}
		if sc > bestScore {
			best, bestScore = i, sc
		}
	}
	return s.dictionary[best]
}
