package protocol

import (
	"github.com/danmuck/kicadctl/internal/kiapi"
)

// EncodeRequest builds the wire bytes of one request envelope carrying m.
func EncodeRequest(h kiapi.APIRequestHeader, m kiapi.Message) ([]byte, error) {
	if m == nil {
		return nil, ErrMalformedEnvelope
	}
	req := &kiapi.APIRequest{
		Header:  &h,
		Message: Pack(m),
	}
	return kiapi.Marshal(req), nil
}

// EncodeResponse builds an AS_OK response envelope carrying m. It is the
// peer side of DecodeResponse and is used by in-process test servers.
func EncodeResponse(token string, m kiapi.Message) ([]byte, error) {
	if m == nil {
		return nil, ErrMalformedEnvelope
	}
	resp := &kiapi.APIResponse{
		Header:  &kiapi.APIResponseHeader{KicadToken: token},
		Status:  &kiapi.APIResponseStatus{Status: kiapi.StatusOK},
		Message: Pack(m),
	}
	return kiapi.Marshal(resp), nil
}

// EncodeErrorResponse builds a response envelope with a non-OK status and no
// payload.
func EncodeErrorResponse(token string, code kiapi.APIStatusCode, message string) []byte {
	resp := &kiapi.APIResponse{
		Header: &kiapi.APIResponseHeader{KicadToken: token},
		Status: &kiapi.APIResponseStatus{Status: code, ErrorMessage: message},
	}
	return kiapi.Marshal(resp)
}
