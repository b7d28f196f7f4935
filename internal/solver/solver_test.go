package solver

import (
	"errors"
	"testing"

	"github.com/robalobadob/wordle-solver/internal/words"
)

var testAlphabet = []rune("abcdefghijklmnopqrstuvwxyz")

func newTestSolver(t *testing.T, dict []string, mode Mode) *Solver {
	t.Helper()
	s, err := New(Config{
		Words:      dict,
		Alphabet:   testAlphabet,
		WordLength: 5,
		MaxGuesses: 6,
		Mode:       mode,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func turnZero() Feedback {
	return Feedback{
		Turn:    0,
		Letters: []int{NoLetter, NoLetter, NoLetter, NoLetter, NoLetter},
		States:  make([]State, 5),
	}
}

func feedbackFor(t *testing.T, turn int, guess string, states []State) Feedback {
	t.Helper()
	letters, err := words.WordIndexes(guess, testAlphabet)
	if err != nil {
		t.Fatalf("WordIndexes(%q): %v", guess, err)
	}
	return Feedback{Turn: turn, Letters: letters, States: states}
}

func TestNew_ConfigValidation(t *testing.T) {
	base := Config{
		Words:      []string{"crane"},
		Alphabet:   testAlphabet,
		WordLength: 5,
		MaxGuesses: 6,
		Mode:       ModeEasy,
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dictionary", func(c *Config) { c.Words = nil }},
		{"empty alphabet", func(c *Config) { c.Alphabet = nil }},
		{"zero word length", func(c *Config) { c.WordLength = 0 }},
		{"zero max guesses", func(c *Config) { c.MaxGuesses = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = "brutal" }},
		{"length mismatch", func(c *Config) { c.Words = []string{"crane", "cat"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected construction error, got nil")
			}
		})
	}
}

func TestGuess_TurnZeroReturnsOpenerAndResets(t *testing.T) {
	dict := []string{"crane", "slate", "train", "brain", "doubt"}
	s := newTestSolver(t, dict, ModeEasy)

	first, err := s.Guess(turnZero())
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !contains(dict, first) {
		t.Fatalf("opener %q not in dictionary", first)
	}

	// Narrow the game, then start a new one: full reset plus same opener.
	fb := feedbackFor(t, 1, first, []State{StateAbsent, StateAbsent, StateAbsent, StateAbsent, StateAbsent})
	if _, err := s.Guess(fb); err != nil && !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("Guess: %v", err)
	}

	again, err := s.Guess(turnZero())
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if again != first {
		t.Errorf("opener changed across games: %q != %q", again, first)
	}
	if s.Remaining() != len(dict) {
		t.Errorf("Remaining = %d after reset, want %d", s.Remaining(), len(dict))
	}
}

func TestOpener_ComputedOnce(t *testing.T) {
	dict := []string{"crane", "slate", "train"}
	s := newTestSolver(t, dict, ModeEasy)

	first := s.Opener()
	for i := 0; i < 3; i++ {
		if got := s.Opener(); got != first {
			t.Fatalf("opener changed on call %d: %q != %q", i+2, got, first)
		}
	}

	// The cached index must survive candidate churn.
	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}
	fb := feedbackFor(t, 1, first, []State{StateCorrect, StateAbsent, StateAbsent, StateAbsent, StateAbsent})
	_, _ = s.Guess(fb)
	if got := s.Opener(); got != first {
		t.Errorf("opener changed after reduction: %q != %q", got, first)
	}
}

func TestGuess_NormalPathReturnsCandidate(t *testing.T) {
	dict := []string{"crane", "slate", "train", "brain", "spoke"}
	s := newTestSolver(t, dict, ModeEasy)

	first, err := s.Guess(turnZero())
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}

	// Feedback that keeps several candidates alive but is not a
	// one-slot-left situation, so the normal scoring path runs.
	states := []State{StateAbsent, StateAbsent, StateAbsent, StateAbsent, StateAbsent}
	guess, err := s.Guess(feedbackFor(t, 1, first, states))
	if errors.Is(err, ErrNoCandidates) {
		t.Skipf("feedback eliminated all of this tiny dictionary")
	}
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !contains(dict, guess) {
		t.Errorf("guess %q not in dictionary", guess)
	}
	if s.Remaining() > len(dict) {
		t.Errorf("candidate set grew: %d > %d", s.Remaining(), len(dict))
	}
}

func TestGuess_DesyncRemovesTopCandidate(t *testing.T) {
	// Hard mode keeps the disambiguation heuristic out of the way, so the
	// correction path is isolated. After "grain" scores one absent and
	// four correct, brain/drain/train stay alive.
	dict := []string{"brain", "drain", "train", "grain", "doubt"}
	s := newTestSolver(t, dict, ModeHard)

	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	// Accepted turn 1: internal counter and external index agree.
	states := []State{StateAbsent, StateCorrect, StateCorrect, StateCorrect, StateCorrect}
	fb := feedbackFor(t, 1, "grain", states)
	second, err := s.Guess(fb)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	before := s.Remaining()
	if before != 3 {
		t.Fatalf("Remaining = %d, want 3 (brain/drain/train)", before)
	}

	// The game rejected `second`: same feedback, same turn index. The
	// internal counter runs ahead, and the solver drops its top pick.
	third, err := s.Guess(fb)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if s.Remaining() != before-1 {
		t.Errorf("Remaining = %d after correction, want %d", s.Remaining(), before-1)
	}
	if third == second {
		t.Errorf("solver retried the rejected guess %q", second)
	}

	// The counter is resynced: a third identical call corrects again,
	// removing exactly one more word.
	if _, err := s.Guess(fb); err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if s.Remaining() != before-2 {
		t.Errorf("Remaining = %d after second correction, want %d", s.Remaining(), before-2)
	}
}

func TestGuess_EmptyCandidatesError(t *testing.T) {
	dict := []string{"crane"}
	s := newTestSolver(t, dict, ModeEasy)

	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	// Contradictory feedback: every letter of the only word absent.
	states := []State{StateAbsent, StateAbsent, StateAbsent, StateAbsent, StateAbsent}
	_, err := s.Guess(feedbackFor(t, 1, "crane", states))
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestGuess_BadFeedbackShape(t *testing.T) {
	s := newTestSolver(t, []string{"crane", "slate"}, ModeEasy)
	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	fb := Feedback{Turn: 1, Letters: []int{0, 1}, States: []State{0, 0}}
	if _, err := s.Guess(fb); err == nil {
		t.Error("expected shape error, got nil")
	}
}

func TestStuckHeuristic_PicksCoveringWord(t *testing.T) {
	// After guessing "grain" with only the first slot wrong, the live
	// candidates are brain/drain/train. A disambiguation guess should
	// come from the full dictionary and cover {b,d,t}: "doubt" covers
	// all three, while "tatty" covers three t's but repeats letters.
	dict := []string{"brain", "drain", "train", "grain", "doubt", "tatty", "crane"}
	s := newTestSolver(t, dict, ModeEasy)

	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	states := []State{StateAbsent, StateCorrect, StateCorrect, StateCorrect, StateCorrect}
	guess, err := s.Guess(feedbackFor(t, 1, "grain", states))
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if guess != "doubt" {
		t.Errorf("guess = %q, want %q", guess, "doubt")
	}
	if s.Remaining() != 3 {
		t.Errorf("Remaining = %d, want 3 (brain/drain/train)", s.Remaining())
	}
}

func TestStuckHeuristic_DisabledInHardMode(t *testing.T) {
	dict := []string{"brain", "drain", "train", "grain", "doubt"}
	s := newTestSolver(t, dict, ModeHard)

	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	states := []State{StateAbsent, StateCorrect, StateCorrect, StateCorrect, StateCorrect}
	guess, err := s.Guess(feedbackFor(t, 1, "grain", states))
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	// Hard mode must pick from the narrowed candidates, never "doubt".
	if guess != "brain" && guess != "drain" && guess != "train" {
		t.Errorf("guess = %q, want one of the live candidates", guess)
	}
}

func TestStuckHeuristic_SkippedOnFinalTurn(t *testing.T) {
	dict := []string{"brain", "drain", "train", "grain", "doubt"}
	s, err := New(Config{
		Words:      dict,
		Alphabet:   testAlphabet,
		WordLength: 5,
		MaxGuesses: 2, // turn 1 is the last allowed guess
		Mode:       ModeEasy,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Guess(turnZero()); err != nil {
		t.Fatalf("Guess: %v", err)
	}

	states := []State{StateAbsent, StateCorrect, StateCorrect, StateCorrect, StateCorrect}
	letters, _ := words.WordIndexes("grain", testAlphabet)
	guess, err := s.Guess(Feedback{Turn: 1, Letters: letters, States: states})
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	// No turn left to spend on disambiguation: must guess a candidate.
	if guess == "doubt" {
		t.Error("heuristic ran on the final allowed turn")
	}
}

func contains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}
