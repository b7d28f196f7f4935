// internal/game/types.go
//
// Type definitions for the self-play game engine.
// Defines:
//   - Game: state for a single game played against a known answer.
//   - ErrRejected: sentinel for guesses refused by hard-mode rules.

package game

import (
	"errors"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrRejected is returned when a guess violates the hard-mode rules.
// A rejected guess does not consume a turn; the caller sees the same
// turn index again, which is how the solver learns of the rejection.
var ErrRejected = errors.New("game: guess rejected by hard-mode rules")

// Game holds the state of one game against a fixed answer.
type Game struct {
	ID         string      // unique identifier (random hex string)
	Answer     string      // the solution word (always lowercase)
	WordLength int         // letters per word
	MaxGuesses int         // guesses allowed
	Mode       solver.Mode // easy: any dictionary word; hard: must reuse hints
	Guesses    []string    // accepted guesses so far (lowercased)
	Finished   bool        // true once the game is over (won or lost)
	Won        bool        // true if finished with a win

	// Revealed hints, tracked for hard-mode validation.
	correct []byte        // letter confirmed at each position, 0 if unknown
	present map[byte]bool // letters known to be in the answer
}
