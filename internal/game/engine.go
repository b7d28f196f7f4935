// internal/game/engine.go
//
// Game engine for self-play: the external collaborator the solver plays
// against. Responsibilities:
//   - Create games with a fixed answer and configured dimensions.
//   - Validate guesses (length, alphabetic) and enforce hard-mode rules.
//   - Score guesses with the classic two-pass feedback algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Feedback states are the solver package's State values, so the
//     engine's output feeds the solver directly.
//   - Hard mode rejects guesses that discard revealed hints without
//     consuming a turn; see ErrRejected.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// New constructs a game around a known answer.
func New(answer string, wordLen, maxGuesses int, mode solver.Mode) *Game {
	return &Game{
		ID:         randomID(),
		Answer:     strings.ToLower(answer),
		WordLength: wordLen,
		MaxGuesses: maxGuesses,
		Mode:       mode,
		Guesses:    []string{},
		correct:    make([]byte, wordLen),
		present:    make(map[byte]bool),
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the per-position feedback states, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly WordLength letters and alphabetic a–z.
//   - In hard mode, the guess must keep every confirmed position and
//     contain every letter known present; otherwise ErrRejected.
//
// State transitions:
//   - If all positions are correct → Finished, Won.
//   - Else if the guess count reaches MaxGuesses → Finished (loss).
func (g *Game) ApplyGuess(guess string) ([]solver.State, error) {
	if g.Finished {
		return nil, errors.New("game finished")
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.WordLength || !isAlpha(guess) {
		return nil, fmt.Errorf("invalid guess %q", guess)
	}
	if g.Mode == solver.ModeHard && !g.honorsHints(guess) {
		return nil, ErrRejected
	}

	states := Feedback(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)
	g.rememberHints(guess, states)

	if allCorrect(states) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.MaxGuesses {
		g.Finished = true
	}
	return states, nil
}

// State reports a coarse string representation of the game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Feedback implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for
//     that letter, mark present and decrement; otherwise mark absent.
//
// This keeps repeated letters honest in both answer and guess.
func Feedback(answer, guess string) []solver.State {
	n := len(guess)
	res := make([]solver.State, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = solver.StateCorrect
		} else {
			counts[answer[i]-'a']++
		}
	}
	for i := 0; i < n; i++ {
		if res[i] == solver.StateCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = solver.StatePresent
			counts[j]--
		} else {
			res[i] = solver.StateAbsent
		}
	}
	return res
}

// honorsHints reports whether guess reuses all revealed hints:
// confirmed letters stay in place and known-present letters appear.
func (g *Game) honorsHints(guess string) bool {
	for i, c := range g.correct {
		if c != 0 && guess[i] != c {
			return false
		}
	}
	for c := range g.present {
		if !strings.ContainsRune(guess, rune(c)) {
			return false
		}
	}
	return true
}

// rememberHints records revealed letters for later hard-mode checks.
func (g *Game) rememberHints(guess string, states []solver.State) {
	for i, st := range states {
		switch st {
		case solver.StateCorrect:
			g.correct[i] = guess[i]
			g.present[guess[i]] = true
		case solver.StatePresent:
			g.present[guess[i]] = true
		}
	}
}

// allCorrect returns true if every state is correct.
func allCorrect(states []solver.State) bool {
	for _, st := range states {
		if st != solver.StateCorrect {
			return false
		}
	}
	return true
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
