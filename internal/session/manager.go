package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lanki/internal/logger"
)

// Manager owns every live session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	log      *logger.Logger
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
		log:      logger.Default().WithPrefix("sessions"),
	}
}

func (m *Manager) Create(email string, userID int64) *Session {
	s := newSession(uuid.NewString(), email, userID, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Debug("created session %s for user_id=%d", s.ID, userID)
	return s
}

// Get returns the session and marks it active.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
		m.log.Debug("deleted session %s", id)
	}
	return ok
}

// Sweep removes sessions idle for longer than ttl and returns how many it removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.log.Info("swept %d idle sessions", len(expired))
	}
	return len(expired)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
