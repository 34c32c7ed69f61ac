package session

import (
	"context"
	"sync"
	"time"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// Manager owns one live Session per signed-in user. Ensure is called on
// every authenticated request; the first call for a user opens the mirrors,
// later calls return the existing session.
type Manager struct {
	store    adapter.RemoteStore
	notifier adapter.AlertNotifier
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager builds a Manager over the given store. The notifier may be nil
// when budget alerts are disabled. now defaults to time.Now.
func NewManager(store adapter.RemoteStore, notifier adapter.AlertNotifier, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:    store,
		notifier: notifier,
		now:      now,
		sessions: make(map[string]*Session),
	}
}

// Ensure returns the live session for userID, starting one if none exists.
func (m *Manager) Ensure(ctx context.Context, userID, email string) (*Session, error) {
	m.mu.Lock()
	if session, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return session, nil
	}
	session := newSession(userID, email, m.store, m.notifier, m.now)
	m.sessions[userID] = session
	m.mu.Unlock()

	if err := session.start(ctx); err != nil {
		m.mu.Lock()
		delete(m.sessions, userID)
		m.mu.Unlock()
		return nil, err
	}
	return session, nil
}

// Get returns the live session for userID, if any.
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	return session, ok
}

// Teardown closes and removes the session for userID. No-op when absent.
func (m *Manager) Teardown(userID string) {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if ok {
		session.Close()
	}
}

// Shutdown closes every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}
