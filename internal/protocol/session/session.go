package session

import (
	"sync"

	"github.com/danmuck/kicadctl/internal/kiapi"
)

// Session carries the client identity and the server-issued token across
// calls on one connection.
type Session struct {
	mu         sync.RWMutex
	clientName string
	token      string
}

// New returns a session for clientName. A non-empty token is treated as
// already captured and is never replaced.
func New(clientName, token string) *Session {
	return &Session{clientName: clientName, token: token}
}

// Header returns the request header for the next outgoing call.
func (s *Session) Header() kiapi.APIRequestHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return kiapi.APIRequestHeader{
		KicadToken: s.token,
		ClientName: s.clientName,
	}
}

// Observe records the token of a reply. The first successful reply that
// carries a token wins; error replies and later tokens are ignored.
// It reports whether the token was captured by this call.
func (s *Session) Observe(status kiapi.APIStatusCode, token string) bool {
	if status != kiapi.StatusOK || token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return false
	}
	s.token = token
	return true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ClientName() string {
	return s.clientName
}
