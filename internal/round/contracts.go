// Package round implements the round state machine shared by every game:
// Idle -> Running -> Ended, one tick per host frame callback, best-score
// persistence on every round end.
package round

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler is the host's frame clock. The runner asks for exactly one more
// tick after every non-terminal tick and cancels on round end or stop.
type Scheduler interface {
	ScheduleNextTick()
	Cancel()
}

// ScoreStore is the persisted best-score cell, keyed by game ID.
// ok is false when no best has been recorded yet. SetBest never lowers the
// cell, since several runners may share one store.
type ScoreStore interface {
	Best(gameID string) (score int, ok bool, err error)
	SetBest(gameID string, score int) error
}

// RoundRecorder is implemented by stores that also keep round history.
type RoundRecorder interface {
	RecordRound(res Result) error
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Result describes a finished round.
type Result struct {
	ID           uuid.UUID
	GameID       string
	Score        int
	Victory      bool
	TokensEarned float64
	Level        int
	Ticks        int
	Duration     time.Duration
	NewBest      bool
	EndedAt      time.Time
}

type nopScheduler struct{}

func (nopScheduler) ScheduleNextTick() {}
func (nopScheduler) Cancel()           {}

// MemoryStore is an in-process ScoreStore used when no database is available.
type MemoryStore struct {
	mu   sync.Mutex
	best map[string]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{best: make(map[string]int)}
}

// Best implements ScoreStore.
func (m *MemoryStore) Best(gameID string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	score, ok := m.best[gameID]
	return score, ok, nil
}

// SetBest implements ScoreStore.
func (m *MemoryStore) SetBest(gameID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.best[gameID]; !ok || score > cur {
		m.best[gameID] = score
	}
	return nil
}
