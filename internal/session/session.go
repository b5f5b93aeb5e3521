// Package session holds the single active identity of the simulator.
// The core services take the acting identity as an explicit argument;
// only the API edge reads the ambient session, which keeps the engines
// testable without shared globals.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the one logical caller session the backend models.
type Session struct {
	mu    sync.Mutex
	email string
	token string
}

// New returns a session with nobody logged in.
func New() *Session {
	return &Session{}
}

// Login makes email the active identity and issues a fresh access token.
// The caller is responsible for checking that the identity exists.
func (s *Session) Login(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
	s.token = uuid.NewString()
	return s.token
}

// Logout clears the active identity and invalidates the token.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = ""
	s.token = ""
}

// Current returns the active identity, or ok=false when nobody is
// logged in.
func (s *Session) Current() (email string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email, s.email != ""
}

// Token returns the access token issued by the last Login.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
