// internal/store/results.go
//
// SQLite-backed persistence for self-play results.
// Implements runner.Sink for writes; read helpers back the /results
// endpoints. All timestamps are RFC3339 UTC, as elsewhere in the tree.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/wordle-solver/internal/runner"
)

// Results reads and writes solve_results rows.
type Results struct {
	db *sql.DB
}

// NewResults wraps a database handle. Schema comes from sql/ migrations.
func NewResults(db *sql.DB) *Results { return &Results{db: db} }

// DB exposes the underlying handle for stores sharing the connection.
func (s *Results) DB() *sql.DB { return s.db }

// Record inserts one finished game. Satisfies runner.Sink.
func (s *Results) Record(ctx context.Context, r runner.Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO solve_results (id, mode, answer, guesses, won, duration_ms, created_at)
        VALUES (?,?,?,?,?,?,?)`,
		r.GameID, string(r.Mode), r.Answer, r.Guesses, boolInt(r.Won),
		r.Duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ResultRow is one row returned for listing endpoints.
type ResultRow struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Answer     string `json:"answer"`
	Guesses    int    `json:"guesses"`
	Won        bool   `json:"won"`
	DurationMs int64  `json:"durationMs"`
	CreatedAt  string `json:"createdAt"`
}

// Recent returns the latest results, newest first. Default limit is 50.
func (s *Results) Recent(ctx context.Context, limit int) ([]ResultRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, answer, guesses, won, duration_ms, created_at
        FROM solve_results
        ORDER BY created_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ResultRow, 0, limit)
	for rows.Next() {
		var r ResultRow
		var won int
		if err := rows.Scan(&r.ID, &r.Mode, &r.Answer, &r.Guesses, &won, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Won = won == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// ResultSummary aggregates stored games.
type ResultSummary struct {
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	AvgGuesses float64 `json:"avgGuesses"` // over won games only
}

// Summary computes win rate inputs across all stored results.
func (s *Results) Summary(ctx context.Context) (ResultSummary, error) {
	var sum ResultSummary
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(won), 0),
               COALESCE(AVG(CASE WHEN won=1 THEN guesses END), 0)
        FROM solve_results`,
	).Scan(&sum.Games, &sum.Wins, &sum.AvgGuesses)
	return sum, err
}

// boolInt maps a bool onto the 0/1 SQLite convention.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
