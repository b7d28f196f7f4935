// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily self-play trace.
// Exposes one endpoint:
//   - GET /daily → today's solve trace (runs and stores it on first request)
//
// Deterministic word selection is based on date + salt, so every replica
// solves the same word and INSERT OR IGNORE keeps a single row per date.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/runner"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string
	mu    sync.Mutex // serializes first-solve of a date
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:   s,
		store: daily.NewStore(s.cfg.Results.DB()),
		salt:  getEnv("DAILY_SALT", "local_dev_salt"),
	}
	r.Get("/daily", dd.handleToday)
	r.Get("/daily/{date}", dd.handleByDate)
}

// handleToday returns today's trace, solving it first if needed.
func (d *dailyServer) handleToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	date := daily.DateKey(now)

	t, err := d.store.Get(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("load daily trace")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if t == nil {
		t, err = d.solveToday(r, now, date)
		if err != nil {
			log.Error().Err(err).Str("date", date).Msg("daily solve")
			http.Error(w, `{"error":"solve_failed"}`, http.StatusInternalServerError)
			return
		}
	}
	_ = json.NewEncoder(w).Encode(t)
}

// handleByDate returns a past trace; dates never solved return 404.
func (d *dailyServer) handleByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	t, err := d.store.Get(r.Context(), date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(t)
}

// solveToday plays the deterministic daily word once and stores the trace.
func (d *dailyServer) solveToday(r *http.Request, now time.Time, date string) (*daily.Trace, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Another request may have raced us here.
	if t, err := d.store.Get(r.Context(), date); err != nil || t != nil {
		return t, err
	}

	list := words.All()
	idx := daily.WordIndex(now, d.salt, len(list))
	answer := list[idx]

	sv, err := solver.New(solver.Config{
		Words:      list,
		Alphabet:   words.Alphabet(),
		WordLength: d.srv.cfg.WordLength,
		MaxGuesses: d.srv.cfg.MaxGuesses,
		Mode:       solver.ModeEasy,
	})
	if err != nil {
		return nil, err
	}

	run := runner.New(sv, solver.ModeEasy, d.srv.cfg.WordLength, d.srv.cfg.MaxGuesses, nil)
	res, err := run.PlayOne(r.Context(), answer)
	if err != nil {
		return nil, err
	}

	t := daily.Trace{
		Date:      date,
		WordIndex: idx,
		Answer:    answer,
		Guesses:   res.Guesses,
		Won:       res.Won,
		Trace:     res.Trace,
	}
	if err := d.store.Insert(r.Context(), t); err != nil {
		return nil, err
	}
	return &t, nil
}
