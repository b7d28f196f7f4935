package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/wordle-solver/internal/runner"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func newTestResults(t *testing.T) *Results {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`
        CREATE TABLE solve_results (
            id          TEXT PRIMARY KEY,
            mode        TEXT    NOT NULL,
            answer      TEXT    NOT NULL,
            guesses     INTEGER NOT NULL,
            won         INTEGER NOT NULL DEFAULT 0,
            duration_ms INTEGER NOT NULL DEFAULT 0,
            created_at  TEXT    NOT NULL
        )`)
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewResults(db)
}

func sampleResult(id string, guesses int, won bool) runner.Result {
	return runner.Result{
		GameID:   id,
		Mode:     solver.ModeEasy,
		Answer:   "crane",
		Guesses:  guesses,
		Won:      won,
		Trace:    []string{"slate", "crane"},
		Duration: 42 * time.Millisecond,
	}
}

func TestResults_RecordAndRecent(t *testing.T) {
	rs := newTestResults(t)
	ctx := context.Background()

	if err := rs.Record(ctx, sampleResult("g1", 3, true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rs.Record(ctx, sampleResult("g2", 6, false)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := rs.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	byID := map[string]ResultRow{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	if r := byID["g1"]; !r.Won || r.Guesses != 3 || r.DurationMs != 42 {
		t.Errorf("g1 = %+v", r)
	}
	if r := byID["g2"]; r.Won {
		t.Errorf("g2 stored as won: %+v", r)
	}
}

func TestResults_RecentDefaultLimit(t *testing.T) {
	rs := newTestResults(t)
	if _, err := rs.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent with zero limit: %v", err)
	}
}

func TestResults_Summary(t *testing.T) {
	rs := newTestResults(t)
	ctx := context.Background()

	// Empty table: zeros, no error.
	sum, err := rs.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Games != 0 || sum.Wins != 0 || sum.AvgGuesses != 0 {
		t.Errorf("empty summary = %+v", sum)
	}

	for _, r := range []runner.Result{
		sampleResult("g1", 3, true),
		sampleResult("g2", 5, true),
		sampleResult("g3", 6, false),
	} {
		if err := rs.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sum, err = rs.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Games != 3 || sum.Wins != 2 {
		t.Errorf("summary = %+v, want 3 games / 2 wins", sum)
	}
	if sum.AvgGuesses != 4 { // (3+5)/2, losses excluded
		t.Errorf("AvgGuesses = %v, want 4", sum.AvgGuesses)
	}
}

func TestResults_DuplicateIDRejected(t *testing.T) {
	rs := newTestResults(t)
	ctx := context.Background()

	if err := rs.Record(ctx, sampleResult("dup", 3, true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rs.Record(ctx, sampleResult("dup", 4, false)); err == nil {
		t.Error("duplicate primary key accepted")
	}
}
