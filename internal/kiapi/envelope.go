package kiapi

import (
	"github.com/danmuck/kicadctl/internal/protocol/wire"
	"google.golang.org/protobuf/types/known/anypb"
)

// APIStatusCode is kiapi.common.ApiStatusCode.
type APIStatusCode int32

const (
	StatusUnknown       APIStatusCode = 0
	StatusOK            APIStatusCode = 1
	StatusTimeout       APIStatusCode = 2
	StatusBadRequest    APIStatusCode = 3
	StatusNotReady      APIStatusCode = 4
	StatusUnhandled     APIStatusCode = 5
	StatusTokenMismatch APIStatusCode = 6
	StatusBusy          APIStatusCode = 7
	StatusUnimplemented APIStatusCode = 8
)

var statusNames = map[APIStatusCode]string{
	StatusUnknown:       "AS_UNKNOWN",
	StatusOK:            "AS_OK",
	StatusTimeout:       "AS_TIMEOUT",
	StatusBadRequest:    "AS_BAD_REQUEST",
	StatusNotReady:      "AS_NOT_READY",
	StatusUnhandled:     "AS_UNHANDLED",
	StatusTokenMismatch: "AS_TOKEN_MISMATCH",
	StatusBusy:          "AS_BUSY",
	StatusUnimplemented: "AS_UNIMPLEMENTED",
}

func (c APIStatusCode) String() string {
	return enumName(statusNames, c)
}

// APIRequestHeader is kiapi.common.ApiRequestHeader.
type APIRequestHeader struct {
	KicadToken string
	ClientName string
}

func (*APIRequestHeader) TypeName() string { return "kiapi.common.ApiRequestHeader" }

func (m *APIRequestHeader) AppendWire(b []byte) []byte {
	b = wire.AppendString(b, 1, m.KicadToken)
	b = wire.AppendString(b, 2, m.ClientName)
	return b
}

func (m *APIRequestHeader) UnmarshalWire(b []byte) error {
	*m = APIRequestHeader{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.KicadToken, err = f.String()
		case 2:
			m.ClientName, err = f.String()
		}
		return err
	})
}

func (m *APIRequestHeader) GetKicadToken() string {
	if m == nil {
		return ""
	}
	return m.KicadToken
}

func (m *APIRequestHeader) GetClientName() string {
	if m == nil {
		return ""
	}
	return m.ClientName
}

// APIRequest is kiapi.common.ApiRequest, the outgoing envelope.
type APIRequest struct {
	Header  *APIRequestHeader
	Message *anypb.Any
}

func (*APIRequest) TypeName() string { return "kiapi.common.ApiRequest" }

func (m *APIRequest) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendEmbedded(b, 1, m.Header)
	}
	return appendAny(b, 2, m.Message)
}

func (m *APIRequest) UnmarshalWire(b []byte) error {
	*m = APIRequest{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Header, err = embedded[APIRequestHeader](f)
		case 2:
			m.Message, err = decodeAny(f)
		}
		return err
	})
}

func (m *APIRequest) GetHeader() *APIRequestHeader {
	if m == nil {
		return nil
	}
	return m.Header
}

func (m *APIRequest) GetMessage() *anypb.Any {
	if m == nil {
		return nil
	}
	return m.Message
}

// APIResponseHeader is kiapi.common.ApiResponseHeader.
type APIResponseHeader struct {
	KicadToken string
}

func (*APIResponseHeader) TypeName() string { return "kiapi.common.ApiResponseHeader" }

func (m *APIResponseHeader) AppendWire(b []byte) []byte {
	return wire.AppendString(b, 1, m.KicadToken)
}

func (m *APIResponseHeader) UnmarshalWire(b []byte) error {
	*m = APIResponseHeader{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.KicadToken, err = f.String()
		}
		return err
	})
}

func (m *APIResponseHeader) GetKicadToken() string {
	if m == nil {
		return ""
	}
	return m.KicadToken
}

// APIResponseStatus is kiapi.common.ApiResponseStatus.
type APIResponseStatus struct {
	Status       APIStatusCode
	ErrorMessage string
}

func (*APIResponseStatus) TypeName() string { return "kiapi.common.ApiResponseStatus" }

func (m *APIResponseStatus) AppendWire(b []byte) []byte {
	b = wire.AppendEnum(b, 1, int32(m.Status))
	b = wire.AppendString(b, 2, m.ErrorMessage)
	return b
}

func (m *APIResponseStatus) UnmarshalWire(b []byte) error {
	*m = APIResponseStatus{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			var v int32
			v, err = f.Enum()
			m.Status = APIStatusCode(v)
		case 2:
			m.ErrorMessage, err = f.String()
		}
		return err
	})
}

func (m *APIResponseStatus) GetStatus() APIStatusCode {
	if m == nil {
		return StatusUnknown
	}
	return m.Status
}

func (m *APIResponseStatus) GetErrorMessage() string {
	if m == nil {
		return ""
	}
	return m.ErrorMessage
}

// APIResponse is kiapi.common.ApiResponse, the incoming envelope.
type APIResponse struct {
	Header  *APIResponseHeader
	Status  *APIResponseStatus
	Message *anypb.Any
}

func (*APIResponse) TypeName() string { return "kiapi.common.ApiResponse" }

func (m *APIResponse) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendEmbedded(b, 1, m.Header)
	}
	if m.Status != nil {
		b = appendEmbedded(b, 2, m.Status)
	}
	return appendAny(b, 3, m.Message)
}

func (m *APIResponse) UnmarshalWire(b []byte) error {
	*m = APIResponse{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Header, err = embedded[APIResponseHeader](f)
		case 2:
			m.Status, err = embedded[APIResponseStatus](f)
		case 3:
			m.Message, err = decodeAny(f)
		}
		return err
	})
}

func (m *APIResponse) GetHeader() *APIResponseHeader {
	if m == nil {
		return nil
	}
	return m.Header
}

func (m *APIResponse) GetStatus() *APIResponseStatus {
	if m == nil {
		return nil
	}
	return m.Status
}

func (m *APIResponse) GetMessage() *anypb.Any {
	if m == nil {
		return nil
	}
	return m.Message
}
