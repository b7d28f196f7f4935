// internal/solver/reduce.go
//
// Candidate elimination from one turn's feedback.
// A single filter pass builds a new candidate slice from the old one;
// a candidate is dropped the moment any position disqualifies it.
//
// The absent-letter rule is deliberately conservative: when the guessed
// word contains the grey letter more than once, only a positional match
// is disqualifying. Ambiguous multi-occurrence cases stay in the pool
// for later turns to resolve, which keeps the true solution from being
// eliminated by repeated-letter feedback.

package solver

import "strings"

// reduce returns the candidates still consistent with the feedback for
// the guessed word. The returned slice never grows relative to its input.
func reduce(candidates []string, guessed string, states []State) []string {
	kept := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if consistent(w, guessed, states) {
			kept = append(kept, w)
		}
	}
	return kept
}

// consistent reports whether candidate w could still be the solution
// given the per-position feedback for guessed, checked left to right.
func consistent(w, guessed string, states []State) bool {
	for i, st := range states {
		g := string(guessed[i])
		switch st {
		case StateCorrect:
			if w[i] != guessed[i] {
				return false
			}
		case StatePresent:
			// The letter is somewhere in the solution, but a candidate
			// holding it at this exact spot would have been marked correct.
			if !strings.Contains(w, g) || w[i] == guessed[i] {
				return false
			}
		case StateAbsent:
			if strings.Contains(w, g) {
				if strings.Count(guessed, g) == 1 {
					return false
				}
				if w[i] == guessed[i] {
					return false
				}
			}
		}
	}
	return true
}
