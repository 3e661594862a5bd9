// Package kicadsim runs an in-process fake KiCad API server for tests.
package kicadsim

import (
	"fmt"
	"sync"
	"testing"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/protocol"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/rep"

	_ "go.nanomsg.org/mangos/v3/transport/inproc"
)

// DefaultToken is the token the server stamps on replies.
const DefaultToken = "kicadsim-token"

// Handler answers one decoded request with an encoded response envelope.
type Handler func(req *kiapi.APIRequest) []byte

// Server is a REP socket answering kiapi requests by payload type.
type Server struct {
	addr   string
	sock   mangos.Socket
	logger zerolog.Logger

	mu       sync.Mutex
	token    string
	handlers map[string]Handler
	requests []*kiapi.APIRequest

	done chan struct{}
}

// Start listens on a unique inproc address and serves until the test ends.
func Start(t *testing.T, logger zerolog.Logger) *Server {
	t.Helper()
	sock, err := rep.NewSocket()
	if err != nil {
		t.Fatalf("kicadsim: socket: %v", err)
	}
	addr := "inproc://kicadsim-" + ulid.Make().String()
	if err := sock.Listen(addr); err != nil {
		_ = sock.Close()
		t.Fatalf("kicadsim: listen %s: %v", addr, err)
	}
	s := &Server{
		addr:     addr,
		sock:     sock,
		logger:   logger,
		token:    DefaultToken,
		handlers: make(map[string]Handler),
		done:     make(chan struct{}),
	}
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Addr() string {
	return s.addr
}

// SetToken changes the token stamped on subsequent replies.
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Handle installs h for requests whose payload is typeName.
func (s *Server) Handle(typeName string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[typeName] = h
}

// Reply answers every request of type req with an AS_OK reply carrying m.
func (s *Server) Reply(req kiapi.Message, m kiapi.Message) {
	s.Handle(req.TypeName(), func(*kiapi.APIRequest) []byte {
		b, err := protocol.EncodeResponse(s.currentToken(), m)
		if err != nil {
			return protocol.EncodeErrorResponse(s.currentToken(), kiapi.StatusUnhandled, err.Error())
		}
		return b
	})
}

// Fail answers every request of type req with a non-OK status.
func (s *Server) Fail(req kiapi.Message, code kiapi.APIStatusCode, message string) {
	s.Handle(req.TypeName(), func(*kiapi.APIRequest) []byte {
		return protocol.EncodeErrorResponse(s.currentToken(), code, message)
	})
}

// Requests returns the requests received so far, in order.
func (s *Server) Requests() []*kiapi.APIRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*kiapi.APIRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Close stops the server and waits for the serve loop to exit.
func (s *Server) Close() {
	_ = s.sock.Close()
	<-s.done
}

func (s *Server) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Server) serve() {
	defer close(s.done)
	for {
		msg, err := s.sock.Recv()
		if err != nil {
			s.logger.Debug().Err(err).Msg("kicadsim.Server.serve stopped")
			return
		}
		if err := s.sock.Send(s.answer(msg)); err != nil {
			s.logger.Debug().Err(err).Msg("kicadsim.Server.serve send failed")
			return
		}
	}
}

func (s *Server) answer(msg []byte) []byte {
	req, err := protocol.DecodeRequest(msg)
	if err != nil {
		return protocol.EncodeErrorResponse("", kiapi.StatusBadRequest, err.Error())
	}
	name := string(req.Message.MessageName())

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h, ok := s.handlers[name]
	token := s.token
	s.mu.Unlock()

	s.logger.Debug().Str("type", name).Str("client", req.GetHeader().GetClientName()).Msg("kicadsim.Server.answer")
	if !ok {
		return protocol.EncodeErrorResponse(token, kiapi.StatusUnhandled, fmt.Sprintf("no handler for %s", name))
	}
	return h(req)
}
