package daily

import (
	"testing"
	"time"
)

func TestDateKey_UTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2026, 8, 22, 23, 30, 0, 0, loc)
	if got := DateKey(local); got != "2026-08-23" {
		t.Errorf("DateKey = %q, want 2026-08-23", got)
	}
}

func TestWordIndex_Deterministic(t *testing.T) {
	date := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	first := WordIndex(date, "salt", 1000)
	for i := 0; i < 5; i++ {
		if got := WordIndex(date, "salt", 1000); got != first {
			t.Fatalf("index changed on call %d: %d != %d", i+2, got, first)
		}
	}

	// Time of day must not matter, only the date.
	evening := time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC)
	if got := WordIndex(evening, "salt", 1000); got != first {
		t.Errorf("index differs within the same date: %d != %d", got, first)
	}
}

func TestWordIndex_InRange(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{1, 2, 7, 385} {
		for day := 0; day < 30; day++ {
			idx := WordIndex(date.AddDate(0, 0, day), "salt", n)
			if idx < 0 || idx >= n {
				t.Fatalf("index %d out of range [0,%d)", idx, n)
			}
		}
	}
}

func TestWordIndex_SaltMatters(t *testing.T) {
	date := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	a := WordIndex(date, "salt-a", 100000)
	b := WordIndex(date, "salt-b", 100000)
	if a == b {
		t.Errorf("different salts produced the same index %d", a)
	}
}

func TestWordIndex_EmptyList(t *testing.T) {
	if got := WordIndex(time.Now(), "salt", 0); got != 0 {
		t.Errorf("WordIndex = %d, want 0 for empty list", got)
	}
}
