package upstream

import (
	"sync"

	"bakerydash/internal/domain"
)

type User struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// Session holds the credentials the client authenticates with. It is safe
// for concurrent use and is shared by every sub-client of a Client.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) set(token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear forgets the token and user, e.g. after the upstream rejected them.
func (s *Session) Clear() {
	s.set("", nil)
}
