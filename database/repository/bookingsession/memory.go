package bookingSessionRepo

import (
	"context"
	"sync"
	"time"

	"pathlab/models"
)

type memoryEntry struct {
	session   models.BookingSession
	expiresAt time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	locks    map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]time.Time),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.BookingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	s := e.session
	if s.Appointment != nil {
		appt := *s.Appointment
		s.Appointment = &appt
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, session *models.BookingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	if s.Appointment != nil {
		appt := *s.Appointment
		s.Appointment = &appt
	}
	m.sessions[s.SessionID] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.locks, id)
	return nil
}

func (m *MemoryStore) Lock(_ context.Context, id string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if until, held := m.locks[id]; held && m.now().Before(until) {
		return false, nil
	}
	m.locks[id] = m.now().Add(ttl)
	return true, nil
}

func (m *MemoryStore) Unlock(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}
