// internal/runner/runner.go
//
// Batch self-play: drives the solver against the game engine.
// Responsibilities:
//   - Play single games (used by the daily trace) and batches (used by
//     the CLI and the admin endpoint).
//   - Feed engine feedback back into the solver, including replaying the
//     same turn index after a hard-mode rejection so the solver's
//     desynchronization correction kicks in.
//   - Report per-game results to an optional sink and show progress on
//     long batches.
//
// A rejected guess removes a candidate on the next solver call, so the
// rejection loop is bounded by the dictionary size.

package runner

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Result is the outcome of one self-played game.
type Result struct {
	GameID   string
	Mode     solver.Mode
	Answer   string
	Guesses  int
	Won      bool
	Trace    []string // accepted guesses in order
	Duration time.Duration
}

// Summary aggregates a batch run.
type Summary struct {
	Games      int
	Wins       int
	AvgGuesses float64 // over won games
}

// Sink receives results as games finish. Implementations may persist
// them (SQLite) or collect them in memory (tests).
type Sink interface {
	Record(ctx context.Context, r Result) error
}

// Runner plays games with a single long-lived solver, so the opener is
// computed once and reused across the whole batch.
type Runner struct {
	solver     *solver.Solver
	mode       solver.Mode
	wordLen    int
	maxGuesses int
	alphabet   []rune
	sink       Sink
}

// New constructs a Runner. sink may be nil.
func New(s *solver.Solver, mode solver.Mode, wordLen, maxGuesses int, sink Sink) *Runner {
	return &Runner{
		solver:     s,
		mode:       mode,
		wordLen:    wordLen,
		maxGuesses: maxGuesses,
		alphabet:   words.Alphabet(),
		sink:       sink,
	}
}

// PlayOne plays a full game against the given answer.
// A solver dead-end (contradictory eliminations after rejections) is
// recorded as a loss rather than aborting the batch.
func (r *Runner) PlayOne(ctx context.Context, answer string) (Result, error) {
	g := game.New(answer, r.wordLen, r.maxGuesses, r.mode)
	start := time.Now()

	// Turn 0 carries sentinel letters and no usable states.
	fb := solver.Feedback{
		Turn:    0,
		Letters: sentinels(r.wordLen),
		States:  make([]solver.State, r.wordLen),
	}

	turn := 0
	for !g.Finished {
		guess, err := r.solver.Guess(fb)
		if errors.Is(err, solver.ErrNoCandidates) {
			log.Warn().Str("gameId", g.ID).Str("answer", answer).
				Msg("solver ran out of candidates")
			break
		}
		if err != nil {
			return Result{}, err
		}

		states, err := g.ApplyGuess(guess)
		if errors.Is(err, game.ErrRejected) {
			// Same feedback, same turn index: the solver sees its internal
			// counter run ahead and drops the word it would have retried.
			continue
		}
		if err != nil {
			return Result{}, err
		}

		turn++
		letters, err := words.WordIndexes(guess, r.alphabet)
		if err != nil {
			return Result{}, err
		}
		fb = solver.Feedback{Turn: turn, Letters: letters, States: states}
	}

	return Result{
		GameID:   g.ID,
		Mode:     r.mode,
		Answer:   answer,
		Guesses:  len(g.Guesses),
		Won:      g.Won,
		Trace:    append([]string(nil), g.Guesses...),
		Duration: time.Since(start),
	}, nil
}

// Run plays n games against random answers, recording each result.
func (r *Runner) Run(ctx context.Context, n int) (Summary, error) {
	bar := progressbar.Default(int64(n))

	var sum Summary
	var guessTotal int
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := r.PlayOne(ctx, words.Random())
		if err != nil {
			return sum, err
		}
		sum.Games++
		if res.Won {
			sum.Wins++
			guessTotal += res.Guesses
		}
		if r.sink != nil {
			if err := r.sink.Record(ctx, res); err != nil {
				log.Warn().Err(err).Str("gameId", res.GameID).Msg("record result")
			}
		}
		_ = bar.Add(1)
	}
	if sum.Wins > 0 {
		sum.AvgGuesses = float64(guessTotal) / float64(sum.Wins)
	}

	log.Info().Int("games", sum.Games).Int("wins", sum.Wins).
		Float64("avgGuesses", sum.AvgGuesses).Msg("batch finished")
	return sum, nil
}

// sentinels builds the turn-0 letter array.
func sentinels(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = solver.NoLetter
	}
	return out
}
