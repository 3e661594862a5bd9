package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedEnvelope = errors.New("protocol: malformed envelope")
	ErrTypeMismatch      = errors.New("protocol: message type mismatch")
)

// TypeMismatchError reports a payload whose type tag differs from the
// requested message type.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("protocol: message type mismatch: want %s got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
