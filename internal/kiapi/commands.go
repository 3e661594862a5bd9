package kiapi

import (
	"github.com/danmuck/kicadctl/internal/protocol/wire"
	"google.golang.org/protobuf/types/known/anypb"
)

// GetVersion asks KiCad for its version. Reply: GetVersionResponse.
type GetVersion struct{}

func (*GetVersion) TypeName() string { return "kiapi.common.commands.GetVersion" }

func (*GetVersion) AppendWire(b []byte) []byte { return b }

func (m *GetVersion) UnmarshalWire(b []byte) error {
	*m = GetVersion{}
	return wire.Walk(b, func(wire.Field) error { return nil })
}

type GetVersionResponse struct {
	Version *KiCadVersion
}

func (*GetVersionResponse) TypeName() string { return "kiapi.common.commands.GetVersionResponse" }

func (m *GetVersionResponse) AppendWire(b []byte) []byte {
	if m.Version != nil {
		b = appendEmbedded(b, 1, m.Version)
	}
	return b
}

func (m *GetVersionResponse) UnmarshalWire(b []byte) error {
	*m = GetVersionResponse{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Version, err = embedded[KiCadVersion](f)
		}
		return err
	})
}

// GetVersionOrEmpty returns the version, or a zero version when absent.
func (m *GetVersionResponse) GetVersionOrEmpty() *KiCadVersion {
	if m == nil || m.Version == nil {
		return &KiCadVersion{}
	}
	return m.Version
}

// Ping checks that the connection to KiCad is alive. Reply: Empty.
type Ping struct{}

func (*Ping) TypeName() string { return "kiapi.common.commands.Ping" }

func (*Ping) AppendWire(b []byte) []byte { return b }

func (m *Ping) UnmarshalWire(b []byte) error {
	*m = Ping{}
	return wire.Walk(b, func(wire.Field) error { return nil })
}

// GetOpenDocuments lists open documents of one type.
// Reply: GetOpenDocumentsResponse.
type GetOpenDocuments struct {
	Type DocumentType
}

func (*GetOpenDocuments) TypeName() string { return "kiapi.common.commands.GetOpenDocuments" }

func (m *GetOpenDocuments) AppendWire(b []byte) []byte {
	return wire.AppendEnum(b, 1, int32(m.Type))
}

func (m *GetOpenDocuments) UnmarshalWire(b []byte) error {
	*m = GetOpenDocuments{}
	return wire.Walk(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		v, err := f.Enum()
		m.Type = DocumentType(v)
		return err
	})
}

type GetOpenDocumentsResponse struct {
	Documents []*DocumentSpecifier
}

func (*GetOpenDocumentsResponse) TypeName() string {
	return "kiapi.common.commands.GetOpenDocumentsResponse"
}

func (m *GetOpenDocumentsResponse) AppendWire(b []byte) []byte {
	for _, doc := range m.Documents {
		b = appendEmbedded(b, 1, doc)
	}
	return b
}

func (m *GetOpenDocumentsResponse) UnmarshalWire(b []byte) error {
	*m = GetOpenDocumentsResponse{}
	return wire.Walk(b, func(f wire.Field) error {
		if f.Num != 1 {
			return nil
		}
		doc, err := embedded[DocumentSpecifier](f)
		if err != nil {
			return err
		}
		m.Documents = append(m.Documents, doc)
		return nil
	})
}

// GetItems retrieves items of the given types from one document.
// Reply: GetItemsResponse.
type GetItems struct {
	Header *ItemHeader
	Types  []ObjectType
}

func (*GetItems) TypeName() string { return "kiapi.common.commands.GetItems" }

func (m *GetItems) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendEmbedded(b, 1, m.Header)
	}
	types := make([]int32, len(m.Types))
	for i, t := range m.Types {
		types[i] = int32(t)
	}
	return wire.AppendPackedEnums(b, 2, types)
}

func (m *GetItems) UnmarshalWire(b []byte) error {
	*m = GetItems{}
	return wire.Walk(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			h, err := embedded[ItemHeader](f)
			if err != nil {
				return err
			}
			m.Header = h
		case 2:
			vs, err := f.Varints()
			if err != nil {
				return err
			}
			for _, v := range vs {
				m.Types = append(m.Types, ObjectType(int32(v)))
			}
		}
		return nil
	})
}

type GetItemsResponse struct {
	Header *ItemHeader
	Status ItemRequestStatus
	Items  []*anypb.Any
}

func (*GetItemsResponse) TypeName() string { return "kiapi.common.commands.GetItemsResponse" }

func (m *GetItemsResponse) AppendWire(b []byte) []byte {
	if m.Header != nil {
		b = appendEmbedded(b, 1, m.Header)
	}
	b = wire.AppendEnum(b, 2, int32(m.Status))
	for _, item := range m.Items {
		b = appendAny(b, 3, item)
	}
	return b
}

func (m *GetItemsResponse) UnmarshalWire(b []byte) error {
	*m = GetItemsResponse{}
	return wire.Walk(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			h, err := embedded[ItemHeader](f)
			if err != nil {
				return err
			}
			m.Header = h
		case 2:
			v, err := f.Enum()
			if err != nil {
				return err
			}
			m.Status = ItemRequestStatus(v)
		case 3:
			item, err := decodeAny(f)
			if err != nil {
				return err
			}
			m.Items = append(m.Items, item)
		}
		return nil
	})
}
