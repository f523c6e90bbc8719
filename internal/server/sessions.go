package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tushaaaaaarr/SnakeRush/internal/engine"
)

// session owns one engine instance on behalf of a remote player. The engine
// is single-owner state; everything that touches it goes through mu so the
// websocket reader and the tick loop never race.
type session struct {
	id string

	mu        sync.Mutex
	game      *engine.Game
	startedAt time.Time
	submitted bool // Final score pushed to the leaderboard

	lastActive time.Time
}

// touch marks the session as recently used. Caller must hold mu.
func (s *session) touch() {
	s.lastActive = time.Now()
}

// sessionManager tracks all live game sessions.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*session)}
}

// create registers a new session with a fresh engine.
func (m *sessionManager) create(width, height int, playerName string) *session {
	now := time.Now()
	s := &session{
		id:         uuid.NewString(),
		game:       engine.New(width, height, playerName, 0),
		startedAt:  now,
		lastActive: now,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	return s
}

func (m *sessionManager) get(id string) (*session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

func (m *sessionManager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *sessionManager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *sessionManager) sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
