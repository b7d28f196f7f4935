// main.go
//
// Entry point for the solver service.
// Two modes:
//   - default: serve the HTTP API (sessions, results, daily, admin).
//   - -simulate N: play N self-play games, store results, print a
//     summary, and exit.

package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/runner"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	simulate := flag.Int("simulate", 0, "play N self-play games and exit")
	modeFlag := flag.String("mode", getEnv("SOLVER_MODE", "easy"), "game mode: easy or hard")
	flag.Parse()

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	mode := solver.Mode(*modeFlag)
	maxGuesses := envInt("MAX_GUESSES", 6)

	db, err := openDB(getEnv("DB_PATH", "./data/solver.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	results := store.NewResults(db)

	if *simulate > 0 {
		sv, err := solver.New(solver.Config{
			Words:      words.All(),
			Alphabet:   words.Alphabet(),
			WordLength: words.Length(),
			MaxGuesses: maxGuesses,
			Mode:       mode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("construct solver")
		}
		log.Info().Str("opener", sv.Opener()).Int("words", words.Count()).
			Str("mode", string(mode)).Msg("starting self-play batch")

		run := runner.New(sv, mode, words.Length(), maxGuesses, results)
		sum, err := run.Run(context.Background(), *simulate)
		if err != nil {
			log.Fatal().Err(err).Msg("self-play batch failed")
		}
		log.Info().Int("games", sum.Games).Int("wins", sum.Wins).
			Float64("avgGuesses", sum.AvgGuesses).Msg("done")
		return
	}

	srv := httpserver.New(httpserver.Config{
		Sessions:   store.NewMemoryStore(),
		Results:    results,
		WordLength: words.Length(),
		MaxGuesses: maxGuesses,
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("words", words.Count()).Msg("starting solver server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns the integer value of k or def if unset/invalid.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
