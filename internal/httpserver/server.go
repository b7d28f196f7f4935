// internal/httpserver/server.go
//
// HTTP wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: POST /session/new, POST /session/guess. A client
//     relays board feedback and receives the solver's next guess.
//   - Results endpoints: GET /results/recent, GET /results/summary.
//   - Daily self-play endpoint: mounted under /daily.
//   - Admin endpoint (bcrypt-gated): POST /admin/simulate.
//   - JWT session tokens bind a client to its solver session.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - A session token is issued on /session/new and required on
//     /session/guess; there are no user accounts.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle-solver/internal/runner"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config carries the server's collaborators and game dimensions.
type Config struct {
	Sessions   store.Store
	Results    *store.Results
	WordLength int
	MaxGuesses int
}

// Server bundles the router, session store, and result store.
type Server struct {
	r       *chi.Mux
	cfg     Config
	maxSims int // upper bound on admin batch size
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, maxSims: 1000}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/new","POST /session/guess","/results/recent","/results/summary","/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words":  words.Count(),
			"length": words.Length(),
		})
	})

	// Session endpoints
	s.r.Post("/session/new", s.handleNewSession)
	s.r.With(s.requireSession()).Post("/session/guess", s.handleSessionGuess)

	// Results
	s.r.Get("/results/recent", s.handleResultsRecent)
	s.r.Get("/results/summary", s.handleResultsSummary)

	// Daily self-play
	s.mountDaily(s.r)

	// Admin (bcrypt-gated)
	s.r.With(s.requireAdmin()).Post("/admin/simulate", s.handleSimulate)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Password")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- SESSIONS ------------------------------------

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	Mode string `json:"mode"` // "easy" | "hard"; defaults to easy
}
type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Guess     string `json:"guess"`     // opening guess to play on the board
	Remaining int    `json:"remaining"` // candidate count after this turn
}

// handleNewSession creates a solver session and returns the opening guess.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	mode := solver.ModeEasy
	if req.Mode == string(solver.ModeHard) {
		mode = solver.ModeHard
	}

	sv, err := solver.New(solver.Config{
		Words:      words.All(),
		Alphabet:   words.Alphabet(),
		WordLength: s.cfg.WordLength,
		MaxGuesses: s.cfg.MaxGuesses,
		Mode:       mode,
	})
	if err != nil {
		log.Error().Err(err).Msg("construct solver")
		http.Error(w, `{"error":"solver_config"}`, http.StatusInternalServerError)
		return
	}

	fb := solver.Feedback{
		Turn:    0,
		Letters: sentinelLetters(s.cfg.WordLength),
		States:  make([]solver.State, s.cfg.WordLength),
	}
	guess, err := sv.Guess(fb)
	if err != nil {
		log.Error().Err(err).Msg("opening guess")
		http.Error(w, `{"error":"solver_failed"}`, http.StatusInternalServerError)
		return
	}

	sess := &store.Session{
		ID:        genID(),
		Mode:      mode,
		Turn:      0,
		LastGuess: guess,
		Solver:    sv,
		CreatedAt: time.Now(),
	}
	if err := s.cfg.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, err := signSessionJWT(sess.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: sess.ID,
		Token:     tok,
		Guess:     guess,
		Remaining: sv.Remaining(),
	})
}

// guessReq/Res payloads for POST /session/guess.
//
// Marks is a word-length string over {x,y,g}: x=absent, y=present
// elsewhere, g=correct. Rejected reports that the board refused the
// previous guess (e.g. hard-mode rules); no marks are needed then.
type guessReq struct {
	Marks    string `json:"marks"`
	Rejected bool   `json:"rejected"`
}
type guessRes struct {
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
	Solved    bool   `json:"solved"`
}

// handleSessionGuess applies one turn of board feedback and returns the
// solver's next guess.
func (s *Server) handleSessionGuess(w http.ResponseWriter, r *http.Request) {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	sess, err := s.cfg.Sessions.Get(r.Context(), sid)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var fb solver.Feedback
	switch {
	case req.Rejected:
		// Replay the last accepted feedback with an unchanged turn index;
		// the solver's internal counter runs ahead and it corrects course.
		if sess.Turn == 0 {
			http.Error(w, `{"error":"cannot_reject_opener"}`, http.StatusConflict)
			return
		}
		fb = sess.LastFeedback
	default:
		states, err := parseMarks(req.Marks, s.cfg.WordLength)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		if allCorrectStates(states) {
			_ = json.NewEncoder(w).Encode(guessRes{Guess: sess.LastGuess, Remaining: 1, Solved: true})
			return
		}
		letters, err := words.WordIndexes(sess.LastGuess, words.Alphabet())
		if err != nil {
			http.Error(w, `{"error":"bad_session_state"}`, http.StatusInternalServerError)
			return
		}
		sess.Turn++
		fb = solver.Feedback{Turn: sess.Turn, Letters: letters, States: states}
		sess.LastFeedback = fb
	}

	guess, err := sess.Solver.Guess(fb)
	if errors.Is(err, solver.ErrNoCandidates) {
		http.Error(w, `{"error":"no_candidates"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	sess.LastGuess = guess
	if err := s.cfg.Sessions.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(guessRes{
		Guess:     guess,
		Remaining: sess.Solver.Remaining(),
	})
}

// ------------------------------ RESULTS ------------------------------------

// handleResultsRecent lists the latest self-play results.
func (s *Server) handleResultsRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	rows, err := s.cfg.Results.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list results")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleResultsSummary aggregates all stored self-play results.
func (s *Server) handleResultsSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.cfg.Results.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("summarize results")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}

// ------------------------------- ADMIN -------------------------------------

type simulateReq struct {
	Games int    `json:"games"`
	Mode  string `json:"mode"`
}

// handleSimulate runs a self-play batch in-process and stores the results.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Games <= 0 || req.Games > s.maxSims {
		http.Error(w, `{"error":"games_out_of_range"}`, http.StatusBadRequest)
		return
	}
	mode := solver.ModeEasy
	if req.Mode == string(solver.ModeHard) {
		mode = solver.ModeHard
	}

	sv, err := solver.New(solver.Config{
		Words:      words.All(),
		Alphabet:   words.Alphabet(),
		WordLength: s.cfg.WordLength,
		MaxGuesses: s.cfg.MaxGuesses,
		Mode:       mode,
	})
	if err != nil {
		http.Error(w, `{"error":"solver_config"}`, http.StatusInternalServerError)
		return
	}

	run := runner.New(sv, mode, s.cfg.WordLength, s.cfg.MaxGuesses, s.cfg.Results)
	sum, err := run.Run(r.Context(), req.Games)
	if err != nil {
		log.Error().Err(err).Msg("simulate batch")
		http.Error(w, `{"error":"simulate_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}

// requireAdmin compares X-Admin-Password against the bcrypt hash in
// ADMIN_PASSWORD_HASH. With no hash configured the endpoints are disabled.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hash := os.Getenv("ADMIN_PASSWORD_HASH")
			if hash == "" {
				http.Error(w, `{"error":"admin_disabled"}`, http.StatusForbidden)
				return
			}
			pw := r.Header.Get("X-Admin-Password")
			if pw == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) != nil {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --------------------------- session tokens --------------------------------

// ctxSessionKey is the context key type for the authenticated session ID.
type ctxSessionKey struct{}

// signSessionJWT creates an HS256 token carrying the session ID with a
// configurable expiry (SESSION_EXPIRES_HOURS; default 24).
func signSessionJWT(sid string) (string, error) {
	hours := 24
	if v := os.Getenv("SESSION_EXPIRES_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			hours = n
		}
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	return t.SignedString([]byte(jwtSecret()))
}

// requireSession enforces a valid session token and injects the session
// ID into the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret()), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			sid, _ := claims["sid"].(string)
			if sid == "" {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// jwtSecret returns the signing secret, with a dev fallback.
func jwtSecret() string {
	return getEnv("JWT_SECRET", "dev_secret_change_me")
}

// ------------------------------- small util --------------------------------

// parseMarks converts an {x,y,g} string into per-position states.
func parseMarks(marks string, n int) ([]solver.State, error) {
	marks = strings.ToLower(strings.TrimSpace(marks))
	if len(marks) != n {
		return nil, errors.New("bad_marks_length")
	}
	out := make([]solver.State, n)
	for i := 0; i < n; i++ {
		switch marks[i] {
		case 'x':
			out[i] = solver.StateAbsent
		case 'y':
			out[i] = solver.StatePresent
		case 'g':
			out[i] = solver.StateCorrect
		default:
			return nil, errors.New("bad_marks_char")
		}
	}
	return out, nil
}

// allCorrectStates reports whether every state is correct.
func allCorrectStates(states []solver.State) bool {
	for _, st := range states {
		if st != solver.StateCorrect {
			return false
		}
	}
	return true
}

// sentinelLetters builds the turn-0 letter array.
func sentinelLetters(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = solver.NoLetter
	}
	return out
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	str := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(str) > 22 {
		return str[:22]
	}
	return str
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
