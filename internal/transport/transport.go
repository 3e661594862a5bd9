package transport

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport: failure")
	ErrClosed    = errors.New("transport: closed")
)

// Transport is a synchronous request/reply link. Every Send must be
// followed by exactly one Recv before the next Send.
type Transport interface {
	Send(msg []byte) error
	Recv() ([]byte, error)
	Close() error
}

// Error reports a failed transport operation against one address.
type Error struct {
	Op   string
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrTransport
}
