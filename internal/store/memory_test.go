package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	sess := &Session{
		ID:        "abc",
		Mode:      solver.ModeEasy,
		Turn:      2,
		LastGuess: "crane",
		CreatedAt: time.Now(),
	}
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := m.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Turn != 2 || got.LastGuess != "crane" {
		t.Errorf("got %+v", got)
	}

	// Save with the same ID overwrites.
	sess2 := &Session{ID: "abc", Turn: 3}
	if err := m.Save(ctx, sess2); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = m.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Turn != 3 {
		t.Errorf("Turn = %d after overwrite, want 3", got.Turn)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	m := NewMemoryStore()
	if _, err := m.Get(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			_ = m.Save(ctx, &Session{ID: id, Turn: n})
			if s, err := m.Get(ctx, id); err != nil || s.Turn != n {
				t.Errorf("session %q: %v %+v", id, err, s)
			}
		}(i)
	}
	wg.Wait()
}
