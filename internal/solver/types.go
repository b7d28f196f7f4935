// internal/solver/types.go
//
// Core type definitions for the guessing engine.
// Defines:
//   - State: per-letter feedback for a guessed word (absent/present/correct).
//   - Feedback: one turn's decoded feedback triple.
//   - Mode: rule set the external game enforces (easy/hard).
//   - Config: construction-time configuration for a Solver.

package solver

import "errors"

// State is the feedback for a single letter position of a guess.
// The numeric values match the wire encoding used by game harnesses:
//   -  0: letter does not appear in the solution.
//   - -1: letter appears in the solution, but not at this position.
//   -  1: letter appears in the solution at this position.
type State int8

const (
	StateAbsent  State = 0
	StatePresent State = -1
	StateCorrect State = 1
)

// NoLetter is the sentinel letter index supplied on turn 0,
// when there is no previous guess to report on.
const NoLetter = -1

// Mode selects which rule set the external game enforces.
// Hard mode disallows heuristic guesses that discard known hints,
// so the solver never proposes words from outside the candidate set.
type Mode string

const (
	ModeEasy Mode = "easy"
	ModeHard Mode = "hard"
)

// Feedback is the decoded result of one turn, produced externally and
// consumed by the solver. Letters holds indices into the configured
// alphabet for the previous guess (NoLetter sentinels on turn 0); States
// holds the per-position feedback aligned to Letters.
type Feedback struct {
	Turn    int
	Letters []int
	States  []State
}

// Config carries everything a Solver needs at construction time.
type Config struct {
	Words      []string // full dictionary of legal guesses
	Alphabet   []rune   // valid letters, indexed by Feedback.Letters
	WordLength int      // letters per word
	MaxGuesses int      // guesses allowed per game
	Mode       Mode
}

// ErrNoCandidates is returned when feedback has eliminated every word.
// It indicates contradictory feedback from the game, not a solver bug.
var ErrNoCandidates = errors.New("solver: no candidates remain")
