// internal/daily/store.go
//
// Persistence for daily self-play traces: one row per date
// (UNIQUE(date), INSERT OR IGNORE keeps the first).

package daily

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Trace is the solver's run against one day's answer.
type Trace struct {
	Date      string   `json:"date"`
	WordIndex int      `json:"wordIndex"`
	Answer    string   `json:"answer"`
	Guesses   int      `json:"guesses"`
	Won       bool     `json:"won"`
	Trace     []string `json:"trace"`
}

// Store reads and writes daily_traces rows.
type Store struct{ db *sql.DB }

// NewStore wraps a database handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Get returns the stored trace for a date, or (nil, nil) if none exists.
func (s *Store) Get(ctx context.Context, date string) (*Trace, error) {
	var t Trace
	var won int
	var joined string
	err := s.db.QueryRowContext(ctx, `
        SELECT date, word_index, answer, guesses, won, trace
        FROM daily_traces WHERE date=?`, date,
	).Scan(&t.Date, &t.WordIndex, &t.Answer, &t.Guesses, &won, &joined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Won = won == 1
	if joined != "" {
		t.Trace = strings.Split(joined, ",")
	}
	return &t, nil
}

// Insert stores a trace; a second insert for the same date is a no-op.
func (s *Store) Insert(ctx context.Context, t Trace) error {
	won := 0
	if t.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_traces (date, word_index, answer, guesses, won, trace)
        VALUES (?,?,?,?,?,?)`,
		t.Date, t.WordIndex, t.Answer, t.Guesses, won, strings.Join(t.Trace, ","),
	)
	return err
}
