package protocol

import (
	"fmt"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"google.golang.org/protobuf/types/known/anypb"
)

// Pack wraps m in an Any tagged with its full schema name.
func Pack(m kiapi.Message) *anypb.Any {
	return &anypb.Any{
		TypeUrl: kiapi.TypeURLPrefix + m.TypeName(),
		Value:   kiapi.Marshal(m),
	}
}

// Unpack decodes a into m when a's type tag names m's type. A type mismatch
// leaves m untouched; on a decode failure the contents of m are unspecified
// and must not be used.
func Unpack(a *anypb.Any, m kiapi.Message) error {
	want := m.TypeName()
	if a == nil {
		return &TypeMismatchError{Want: want, Got: "<none>"}
	}
	if got := string(a.MessageName()); got != want {
		if got == "" {
			got = a.GetTypeUrl()
		}
		return &TypeMismatchError{Want: want, Got: got}
	}

	if err := kiapi.Unmarshal(a.GetValue(), m); err != nil {
		return fmt.Errorf("%w: payload %s: %v", ErrMalformedEnvelope, want, err)
	}
	return nil
}
