package kiapi

import (
	"fmt"

	"github.com/danmuck/kicadctl/internal/protocol/wire"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// TypeURLPrefix is prepended to a message's full name to form an Any type URL.
const TypeURLPrefix = "type.googleapis.com/"

// Message is one schema-defined record with a stable full name.
type Message interface {
	// TypeName is the fully qualified schema name, e.g. kiapi.common.commands.GetVersion.
	TypeName() string
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

// Marshal returns the wire encoding of m.
func Marshal(m Message) []byte {
	return m.AppendWire(nil)
}

// Unmarshal decodes b into m, replacing its contents.
func Unmarshal(b []byte, m Message) error {
	return m.UnmarshalWire(b)
}

type messagePtr[T any] interface {
	*T
	Message
}

func embedded[T any, P messagePtr[T]](f wire.Field) (*T, error) {
	if f.Type != protowire.BytesType {
		return nil, fmt.Errorf("%w: field %d: embedded message in wire type %d", wire.ErrFieldTypeMismatch, f.Num, f.Type)
	}
	v := new(T)
	if err := P(v).UnmarshalWire(f.Value); err != nil {
		return nil, err
	}
	return v, nil
}

func appendEmbedded(b []byte, num protowire.Number, m Message) []byte {
	return wire.AppendMessage(b, num, m.AppendWire)
}

func decodeAny(f wire.Field) (*anypb.Any, error) {
	raw, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	a := &anypb.Any{}
	if err := proto.Unmarshal(raw, a); err != nil {
		return nil, fmt.Errorf("%w: field %d: %v", wire.ErrMalformed, f.Num, err)
	}
	return a, nil
}

func appendAny(b []byte, num protowire.Number, a *anypb.Any) []byte {
	if a == nil {
		return b
	}
	return wire.AppendMessage(b, num, func(b []byte) []byte {
		b = wire.AppendString(b, 1, a.GetTypeUrl())
		if len(a.GetValue()) > 0 {
			b = wire.AppendBytes(b, 2, a.GetValue())
		}
		return b
	})
}

// Empty is google.protobuf.Empty.
type Empty struct{}

func (*Empty) TypeName() string { return "google.protobuf.Empty" }

func (*Empty) AppendWire(b []byte) []byte { return b }

func (m *Empty) UnmarshalWire(b []byte) error {
	*m = Empty{}
	return wire.Walk(b, func(wire.Field) error { return nil })
}
