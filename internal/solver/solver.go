// internal/solver/solver.go
//
// Guess controller for a word-guessing game.
// Responsibilities:
//   - Hold the immutable dictionary and the per-game candidate set.
//   - Precompute the opening guess once per process and reuse it.
//   - Apply each turn's feedback to shrink the candidate set.
//   - Detect guess rejection via turn-counter desynchronization and
//     correct for it.
//   - Pick the next guess: entropy scoring over candidates, or the
//     stuck-position heuristic when only one slot is unresolved.
//
// The controller is synchronous and single-caller: one guess is computed
// and returned before the next feedback can arrive. A new game is
// signaled by a zero turn index, which resets per-game state.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Solver picks guesses for one game at a time. Construct once per process;
// sequential games through the same Solver share the cached opener.
type Solver struct {
	cfg        Config
	dictionary []string // full universe of legal guesses, never mutated
	candidates []string // words still consistent with this game's feedback

	opener    int // index into dictionary of the precomputed first guess
	openerSet bool

	counter int // turns this solver believes have been accepted
}

// New validates cfg and constructs a Solver.
func New(cfg Config) (*Solver, error) {
	if len(cfg.Words) == 0 {
		return nil, fmt.Errorf("solver: empty dictionary")
	}
	if len(cfg.Alphabet) == 0 {
		return nil, fmt.Errorf("solver: empty alphabet")
	}
	if cfg.WordLength <= 0 {
		return nil, fmt.Errorf("solver: word length must be positive, got %d", cfg.WordLength)
	}
	if cfg.MaxGuesses <= 0 {
		return nil, fmt.Errorf("solver: max guesses must be positive, got %d", cfg.MaxGuesses)
	}
	switch cfg.Mode {
	case ModeEasy, ModeHard:
	default:
		return nil, fmt.Errorf("solver: unknown mode %q", cfg.Mode)
	}
	for _, w := range cfg.Words {
		if len(w) != cfg.WordLength {
			return nil, fmt.Errorf("solver: word %q is not %d letters", w, cfg.WordLength)
		}
	}

	dict := append([]string(nil), cfg.Words...)
	return &Solver{
		cfg:        cfg,
		dictionary: dict,
		candidates: append([]string(nil), dict...),
	}, nil
}

// Guess consumes one turn's feedback and returns the next guess.
//
// Turn 0 starts a new game: the candidate set is reset to the full
// dictionary and the cached opener is returned directly. On later turns
// the candidate set is reduced first; if the external turn index then
// disagrees with the internal counter, the previous guess was rejected
// by the game rules, and the word that would be retried is removed.
func (s *Solver) Guess(fb Feedback) (string, error) {
	s.counter++
	s.ensureOpener()

	if fb.Turn == 0 {
		s.counter = 0
		s.candidates = append([]string(nil), s.dictionary...)
		return s.dictionary[s.opener], nil
	}

	if len(fb.Letters) != s.cfg.WordLength || len(fb.States) != s.cfg.WordLength {
		return "", fmt.Errorf("solver: feedback has %d letters and %d states, want %d",
			len(fb.Letters), len(fb.States), s.cfg.WordLength)
	}

	guessed := words.IndexWord(fb.Letters, s.cfg.Alphabet)
	s.candidates = reduce(s.candidates, guessed, fb.States)

	if fb.Turn != s.counter {
		// The game rejected the previous guess (e.g. a hard-mode violation).
		// That word cannot be retried, and under this policy is assumed
		// unlikely to be the solution, so drop the current top scorer.
		if i := bestIndex(s.candidates, s.candidates); i >= 0 {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
		}
		s.counter = fb.Turn
	}

	if len(s.candidates) == 0 {
		return "", ErrNoCandidates
	}

	if s.cfg.Mode == ModeEasy && len(s.candidates) > 2 &&
		fb.Turn != s.cfg.MaxGuesses-1 &&
		correctCount(fb.States) == s.cfg.WordLength-1 {
		return s.stuckGuess(fb.States), nil
	}

	return s.candidates[bestIndex(s.candidates, s.candidates)], nil
}

// ensureOpener computes the opening guess on first use. The scoring pass
// covers the whole dictionary and can be slow on large lists, so the
// result is kept for the process lifetime; later calls are no-ops.
func (s *Solver) ensureOpener() {
	if s.openerSet {
		return
	}
	s.opener = bestIndex(s.dictionary, s.dictionary)
	s.openerSet = true
}

// Opener returns the precomputed first guess, computing it if needed.
func (s *Solver) Opener() string {
	s.ensureOpener()
	return s.dictionary[s.opener]
}

// Remaining reports how many candidates are still alive this game.
func (s *Solver) Remaining() int { return len(s.candidates) }

// correctCount counts positions marked correct in the last feedback.
func correctCount(states []State) int {
	n := 0
	for _, st := range states {
		if st == StateCorrect {
			n++
		}
	}
	return n
}
