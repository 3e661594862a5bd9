package kicad

import (
	"errors"
	"fmt"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/transport"
)

var (
	// ErrTransport matches any *transport.Error.
	ErrTransport   = transport.ErrTransport
	ErrAPI         = errors.New("kicad: api error")
	ErrProtocol    = errors.New("kicad: protocol error")
	ErrNoBoardOpen = errors.New("kicad: no board open")
	ErrItemRequest = errors.New("kicad: item request failed")
)

// APIError is a reply whose status was not AS_OK.
type APIError struct {
	Code    kiapi.APIStatusCode
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("KiCad API returned error: %s (%s)", e.Message, e.Code)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// ItemRequestError is a GetItems reply whose item status was not IRS_OK.
type ItemRequestError struct {
	Status kiapi.ItemRequestStatus
}

func (e *ItemRequestError) Error() string {
	return fmt.Sprintf("kicad: item request failed: %s", e.Status)
}

func (e *ItemRequestError) Is(target error) bool {
	return target == ErrItemRequest
}
