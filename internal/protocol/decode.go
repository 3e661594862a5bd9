package protocol

import (
	"fmt"

	"github.com/danmuck/kicadctl/internal/kiapi"
)

// DecodeResponse parses one response envelope. An empty buffer is not a
// valid envelope: every KiCad reply carries at least a status.
func DecodeResponse(b []byte) (*kiapi.APIResponse, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedEnvelope)
	}
	resp := &kiapi.APIResponse{}
	if err := kiapi.Unmarshal(b, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return resp, nil
}

// DecodeRequest parses one request envelope. A request without a payload
// is malformed.
func DecodeRequest(b []byte) (*kiapi.APIRequest, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty request", ErrMalformedEnvelope)
	}
	req := &kiapi.APIRequest{}
	if err := kiapi.Unmarshal(b, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if req.Message == nil {
		return nil, fmt.Errorf("%w: request has no payload", ErrMalformedEnvelope)
	}
	return req, nil
}
