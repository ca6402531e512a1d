package session

import (
	"context"
	"log"
	"sync"

	"github.com/milk9111/mapforge/palette"
)

type openResult struct {
	generation int
	session    *Session
	err        error
}

// Manager owns at most one live session and guards entity switches: opening
// a new entity discards the old session in full, and a generation counter
// drops results from opens that were superseded while their palette fetches
// were still in flight.
type Manager struct {
	mu         sync.Mutex
	current    *Session
	generation int
	cancel     context.CancelFunc
	results    chan openResult

	fetcher    palette.Fetcher
	cellSize   float64
	historyMax int
}

// NewManager builds a manager whose sessions share one fetcher, cell size,
// and undo bound. historyMax at or below zero picks the session default.
func NewManager(fetcher palette.Fetcher, cellSize float64, historyMax int) *Manager {
	return &Manager{
		fetcher:    fetcher,
		cellSize:   cellSize,
		historyMax: historyMax,
		results:    make(chan openResult, 1),
	}
}

// Current returns the live session, or nil when nothing is loaded.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Open starts loading the given record in the background. Any previous
// session is discarded immediately; the new session becomes current once its
// palette fetches complete, unless another Open or Discard happens first.
func (m *Manager) Open(record map[string]any, key string) {
	m.mu.Lock()
	m.discardLocked()
	m.generation++
	gen := m.generation
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	go func() {
		s, err := Open(ctx, record, key, m.fetcher, m.cellSize, m.historyMax)
		select {
		case m.results <- openResult{generation: gen, session: s, err: err}:
		case <-ctx.Done():
		}
	}()
}

// Discard drops the current session and cancels any open still in flight.
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discardLocked()
	m.generation++
}

func (m *Manager) discardLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.current = nil
}

// Poll installs a finished open if one is pending and still wanted. Call it
// once per frame; it never blocks. Returns true when the current session
// changed.
func (m *Manager) Poll() bool {
	select {
	case res := <-m.results:
		m.mu.Lock()
		defer m.mu.Unlock()
		if res.generation != m.generation {
			return false
		}
		if res.err != nil {
			log.Printf("session: open failed: %v", res.err)
			return false
		}
		m.current = res.session
		return true
	default:
		return false
	}
}
