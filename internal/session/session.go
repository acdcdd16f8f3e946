package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/videoclub/rental/internal/model"
)

// Session carries the authenticated user plus a scratch key/value store used
// to pass a selected entity between screens. One session belongs to one
// caller; it is not synchronized.
type Session struct {
	user   *model.User
	values map[string]any
}

func newSession(user *model.User) *Session {
	return &Session{
		user:   user,
		values: make(map[string]any),
	}
}

func (s *Session) User() *model.User {
	return s.user
}

func (s *Session) Set(key string, value any) {
	s.values[key] = value
}

func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Delete(key string) {
	delete(s.values, key)
}

// Manager creates sessions at login and drops them at logout. The manager
// itself is locked because the HTTP boundary is concurrent.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Login creates a session for the user and returns its token.
func (m *Manager) Login(user *model.User) (string, *Session) {
	token := newToken()
	s := newSession(user)

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()

	return token, s
}

func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Logout discards the session and everything stored in it.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
