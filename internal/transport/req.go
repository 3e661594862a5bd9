package transport

import (
	"errors"
	"sync"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/req"

	// Registered schemes for Dial.
	_ "go.nanomsg.org/mangos/v3/transport/inproc"
	_ "go.nanomsg.org/mangos/v3/transport/ipc"
)

// ReqSocket is a Transport over an nng REQ socket, the client side of
// KiCad's API server.
type ReqSocket struct {
	addr string

	mu     sync.Mutex
	sock   mangos.Socket
	closed bool
}

// Dial opens a REQ socket connected to addr, e.g. ipc:///tmp/kicad/api.sock.
// It fails when nothing is listening at addr.
func Dial(addr string) (*ReqSocket, error) {
	sock, err := req.NewSocket()
	if err != nil {
		return nil, &Error{Op: "socket", Addr: addr, Err: err}
	}
	// No REQ resend: each request is delivered at most once.
	if err := sock.SetOption(mangos.OptionRetryTime, time.Duration(0)); err != nil {
		_ = sock.Close()
		return nil, &Error{Op: "socket", Addr: addr, Err: err}
	}
	if err := sock.Dial(addr); err != nil {
		_ = sock.Close()
		return nil, &Error{Op: "dial", Addr: addr, Err: err}
	}
	return &ReqSocket{addr: addr, sock: sock}, nil
}

func (s *ReqSocket) Addr() string {
	return s.addr
}

func (s *ReqSocket) Send(msg []byte) error {
	if s.isClosed() {
		return &Error{Op: "send", Addr: s.addr, Err: ErrClosed}
	}
	if err := s.sock.Send(msg); err != nil {
		return &Error{Op: "send", Addr: s.addr, Err: mapClosed(err)}
	}
	return nil
}

func (s *ReqSocket) Recv() ([]byte, error) {
	if s.isClosed() {
		return nil, &Error{Op: "recv", Addr: s.addr, Err: ErrClosed}
	}
	msg, err := s.sock.Recv()
	if err != nil {
		return nil, &Error{Op: "recv", Addr: s.addr, Err: mapClosed(err)}
	}
	return msg, nil
}

// Close releases the socket. It is safe to call more than once.
func (s *ReqSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.sock.Close(); err != nil && !errors.Is(err, mangos.ErrClosed) {
		return &Error{Op: "close", Addr: s.addr, Err: err}
	}
	return nil
}

func (s *ReqSocket) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func mapClosed(err error) error {
	if errors.Is(err, mangos.ErrClosed) {
		return ErrClosed
	}
	return err
}
