// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Sessions wrap a live solver for a client-driven game (a human relaying
// feedback from a real board); they are ephemeral by design and lost on
// restart, which matches the solver's own no-persistence model.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads, exclusive writes).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// Session is one client-driven solving session.
type Session struct {
	ID           string
	Mode         solver.Mode
	Turn         int             // accepted turns so far (the external counter)
	LastGuess    string          // most recent guess handed to the client
	LastFeedback solver.Feedback // last accepted feedback, replayed on rejection
	Solver       *solver.Solver
	CreatedAt    time.Time
}

// Store defines the persistence interface for solving sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns an error if the session is not found.
	Get(ctx context.Context, id string) (*Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions map
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}
