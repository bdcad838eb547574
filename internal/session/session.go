// Package session holds the signed-in user for the lifetime of a login.
// It is created at login and torn down at logout; components that gate on
// identity receive it explicitly.
package session

import (
	"sync"

	"movie-catalog/internal/data/entity"
)

type Identity struct {
	ID   string
	Name string
	Role entity.UserRole
}

type Session struct {
	mu       sync.RWMutex
	identity Identity
	token    string
	active   bool
}

func New() *Session {
	return &Session{}
}

// Establish signs a user in, replacing any previous identity.
func (s *Session) Establish(identity Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.token = token
	s.active = true
}

func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = Identity{}
	s.token = ""
	s.active = false
}

// Current returns the signed-in identity. A nil session is signed out.
func (s *Session) Current() (Identity, bool) {
	if s == nil {
		return Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.active
}

func (s *Session) IsAdmin() bool {
	identity, ok := s.Current()
	return ok && identity.Role == entity.RoleAdmin
}

// Token is the bearer credential sent with every request while signed in.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
