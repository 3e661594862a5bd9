package kiapi

import (
	"strconv"

	"github.com/danmuck/kicadctl/internal/protocol/wire"
)

func enumName[E ~int32](names map[E]string, v E) string {
	if name, ok := names[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}

// DocumentType is kiapi.common.types.DocumentType.
type DocumentType int32

const (
	DocTypeUnknown      DocumentType = 0
	DocTypeSchematic    DocumentType = 1
	DocTypeSymbol       DocumentType = 2
	DocTypePCB          DocumentType = 3
	DocTypeFootprint    DocumentType = 4
	DocTypeDrawingSheet DocumentType = 5
	DocTypeProject      DocumentType = 6
)

var documentTypeNames = map[DocumentType]string{
	DocTypeUnknown:      "DOCTYPE_UNKNOWN",
	DocTypeSchematic:    "DOCTYPE_SCHEMATIC",
	DocTypeSymbol:       "DOCTYPE_SYMBOL",
	DocTypePCB:          "DOCTYPE_PCB",
	DocTypeFootprint:    "DOCTYPE_FOOTPRINT",
	DocTypeDrawingSheet: "DOCTYPE_DRAWING_SHEET",
	DocTypeProject:      "DOCTYPE_PROJECT",
}

func (t DocumentType) String() string { return enumName(documentTypeNames, t) }

// ObjectType is kiapi.common.types.KiCadObjectType.
type ObjectType int32

const (
	ObjectTypeUnknown      ObjectType = 0
	ObjectTypePCBFootprint ObjectType = 1
	ObjectTypePCBPad       ObjectType = 2
	ObjectTypePCBShape     ObjectType = 3
	ObjectTypePCBField     ObjectType = 5
	ObjectTypePCBText      ObjectType = 7
	ObjectTypePCBTrace     ObjectType = 11
	ObjectTypePCBVia       ObjectType = 12
	ObjectTypePCBZone      ObjectType = 16
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeUnknown:      "KOT_UNKNOWN",
	ObjectTypePCBFootprint: "KOT_PCB_FOOTPRINT",
	ObjectTypePCBPad:       "KOT_PCB_PAD",
	ObjectTypePCBShape:     "KOT_PCB_SHAPE",
	ObjectTypePCBField:     "KOT_PCB_FIELD",
	ObjectTypePCBText:      "KOT_PCB_TEXT",
	ObjectTypePCBTrace:     "KOT_PCB_TRACE",
	ObjectTypePCBVia:       "KOT_PCB_VIA",
	ObjectTypePCBZone:      "KOT_PCB_ZONE",
}

func (t ObjectType) String() string { return enumName(objectTypeNames, t) }

// ItemRequestStatus is kiapi.common.types.ItemRequestStatus.
type ItemRequestStatus int32

const (
	ItemRequestUnknown          ItemRequestStatus = 0
	ItemRequestOK               ItemRequestStatus = 1
	ItemRequestDocumentNotFound ItemRequestStatus = 2
	ItemRequestFieldMaskInvalid ItemRequestStatus = 3
)

var itemRequestStatusNames = map[ItemRequestStatus]string{
	ItemRequestUnknown:          "IRS_UNKNOWN",
	ItemRequestOK:               "IRS_OK",
	ItemRequestDocumentNotFound: "IRS_DOCUMENT_NOT_FOUND",
	ItemRequestFieldMaskInvalid: "IRS_FIELD_MASK_INVALID",
}

func (s ItemRequestStatus) String() string { return enumName(itemRequestStatusNames, s) }

// LockedState is kiapi.common.types.LockedState.
type LockedState int32

const (
	LockedUnknown  LockedState = 0
	LockedUnlocked LockedState = 1
	LockedLocked   LockedState = 2
)

var lockedStateNames = map[LockedState]string{
	LockedUnknown:  "LS_UNKNOWN",
	LockedUnlocked: "LS_UNLOCKED",
	LockedLocked:   "LS_LOCKED",
}

func (s LockedState) String() string { return enumName(lockedStateNames, s) }

// KiCadVersion is kiapi.common.types.KiCadVersion.
type KiCadVersion struct {
	Major       uint32
	Minor       uint32
	Patch       uint32
	FullVersion string
}

func (*KiCadVersion) TypeName() string { return "kiapi.common.types.KiCadVersion" }

func (m *KiCadVersion) AppendWire(b []byte) []byte {
	b = wire.AppendUint32(b, 1, m.Major)
	b = wire.AppendUint32(b, 2, m.Minor)
	b = wire.AppendUint32(b, 3, m.Patch)
	b = wire.AppendString(b, 4, m.FullVersion)
	return b
}

func (m *KiCadVersion) UnmarshalWire(b []byte) error {
	*m = KiCadVersion{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Major, err = f.Uint32()
		case 2:
			m.Minor, err = f.Uint32()
		case 3:
			m.Patch, err = f.Uint32()
		case 4:
			m.FullVersion, err = f.String()
		}
		return err
	})
}

// KIID is kiapi.common.types.KIID, KiCad's object UUID.
type KIID struct {
	Value string
}

func (*KIID) TypeName() string { return "kiapi.common.types.KIID" }

func (m *KIID) AppendWire(b []byte) []byte {
	return wire.AppendString(b, 1, m.Value)
}

func (m *KIID) UnmarshalWire(b []byte) error {
	*m = KIID{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Value, err = f.String()
		}
		return err
	})
}

func (m *KIID) GetValue() string {
	if m == nil {
		return ""
	}
	return m.Value
}

// LibraryIdentifier is kiapi.common.types.LibraryIdentifier.
type LibraryIdentifier struct {
	LibraryNickname string
	EntryName       string
}

func (*LibraryIdentifier) TypeName() string { return "kiapi.common.types.LibraryIdentifier" }

func (m *LibraryIdentifier) AppendWire(b []byte) []byte {
	b = wire.AppendString(b, 1, m.LibraryNickname)
	b = wire.AppendString(b, 2, m.EntryName)
	return b
}

func (m *LibraryIdentifier) UnmarshalWire(b []byte) error {
	*m = LibraryIdentifier{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.LibraryNickname, err = f.String()
		case 2:
			m.EntryName, err = f.String()
		}
		return err
	})
}

func (m *LibraryIdentifier) GetEntryName() string {
	if m == nil {
		return ""
	}
	return m.EntryName
}

// String renders the identifier as nickname:entry.
func (m *LibraryIdentifier) String() string {
	if m == nil {
		return ""
	}
	if m.LibraryNickname == "" {
		return m.EntryName
	}
	return m.LibraryNickname + ":" + m.EntryName
}

func (*LibraryIdentifier) isDocumentIdentifier() {}

// SheetPath is kiapi.common.types.SheetPath.
type SheetPath struct {
	Path              []*KIID
	PathHumanReadable string
}

func (*SheetPath) TypeName() string { return "kiapi.common.types.SheetPath" }

func (m *SheetPath) AppendWire(b []byte) []byte {
	for _, id := range m.Path {
		b = appendEmbedded(b, 1, id)
	}
	return wire.AppendString(b, 2, m.PathHumanReadable)
}

func (m *SheetPath) UnmarshalWire(b []byte) error {
	*m = SheetPath{}
	return wire.Walk(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			id, err := embedded[KIID](f)
			if err != nil {
				return err
			}
			m.Path = append(m.Path, id)
		case 2:
			v, err := f.String()
			if err != nil {
				return err
			}
			m.PathHumanReadable = v
		}
		return nil
	})
}

// String renders the human readable path, falling back to joined KIIDs.
func (m *SheetPath) String() string {
	if m == nil {
		return ""
	}
	if m.PathHumanReadable != "" {
		return m.PathHumanReadable
	}
	out := ""
	for _, id := range m.Path {
		out += "/" + id.GetValue()
	}
	return out
}

func (*SheetPath) isDocumentIdentifier() {}

// BoardFilename is the board_filename variant of a document identifier.
type BoardFilename string

func (BoardFilename) isDocumentIdentifier() {}

// DocumentIdentifier is the identifier oneof of a DocumentSpecifier. It is
// one of *LibraryIdentifier, *SheetPath or BoardFilename.
type DocumentIdentifier interface {
	isDocumentIdentifier()
}

// ProjectSpecifier is kiapi.common.types.ProjectSpecifier.
type ProjectSpecifier struct {
	Name string
	Path string
}

func (*ProjectSpecifier) TypeName() string { return "kiapi.common.types.ProjectSpecifier" }

func (m *ProjectSpecifier) AppendWire(b []byte) []byte {
	b = wire.AppendString(b, 1, m.Name)
	b = wire.AppendString(b, 2, m.Path)
	return b
}

func (m *ProjectSpecifier) UnmarshalWire(b []byte) error {
	*m = ProjectSpecifier{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Name, err = f.String()
		case 2:
			m.Path, err = f.String()
		}
		return err
	})
}

// DocumentSpecifier is kiapi.common.types.DocumentSpecifier.
type DocumentSpecifier struct {
	Type       DocumentType
	Identifier DocumentIdentifier
	Project    *ProjectSpecifier
}

func (*DocumentSpecifier) TypeName() string { return "kiapi.common.types.DocumentSpecifier" }

func (m *DocumentSpecifier) AppendWire(b []byte) []byte {
	b = wire.AppendEnum(b, 1, int32(m.Type))
	switch id := m.Identifier.(type) {
	case *LibraryIdentifier:
		b = appendEmbedded(b, 2, id)
	case *SheetPath:
		b = appendEmbedded(b, 3, id)
	case BoardFilename:
		b = wire.AppendBytes(b, 4, []byte(id))
	}
	if m.Project != nil {
		b = appendEmbedded(b, 5, m.Project)
	}
	return b
}

func (m *DocumentSpecifier) UnmarshalWire(b []byte) error {
	*m = DocumentSpecifier{}
	return wire.Walk(b, func(f wire.Field) error {
		switch f.Num {
		case 1:
			v, err := f.Enum()
			if err != nil {
				return err
			}
			m.Type = DocumentType(v)
		case 2:
			id, err := embedded[LibraryIdentifier](f)
			if err != nil {
				return err
			}
			m.Identifier = id
		case 3:
			id, err := embedded[SheetPath](f)
			if err != nil {
				return err
			}
			m.Identifier = id
		case 4:
			v, err := f.String()
			if err != nil {
				return err
			}
			m.Identifier = BoardFilename(v)
		case 5:
			p, err := embedded[ProjectSpecifier](f)
			if err != nil {
				return err
			}
			m.Project = p
		}
		return nil
	})
}

// ItemHeader is kiapi.common.types.ItemHeader. The field mask is not modelled.
type ItemHeader struct {
	Document  *DocumentSpecifier
	Container *KIID
}

func (*ItemHeader) TypeName() string { return "kiapi.common.types.ItemHeader" }

func (m *ItemHeader) AppendWire(b []byte) []byte {
	if m.Document != nil {
		b = appendEmbedded(b, 1, m.Document)
	}
	if m.Container != nil {
		b = appendEmbedded(b, 2, m.Container)
	}
	return b
}

func (m *ItemHeader) UnmarshalWire(b []byte) error {
	*m = ItemHeader{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Document, err = embedded[DocumentSpecifier](f)
		case 2:
			m.Container, err = embedded[KIID](f)
		}
		return err
	})
}

// Vector2 is kiapi.common.types.Vector2, in nanometers.
type Vector2 struct {
	XNm int64
	YNm int64
}

func (*Vector2) TypeName() string { return "kiapi.common.types.Vector2" }

func (m *Vector2) AppendWire(b []byte) []byte {
	b = wire.AppendInt64(b, 1, m.XNm)
	b = wire.AppendInt64(b, 2, m.YNm)
	return b
}

func (m *Vector2) UnmarshalWire(b []byte) error {
	*m = Vector2{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.XNm, err = f.Int64()
		case 2:
			m.YNm, err = f.Int64()
		}
		return err
	})
}

func (m *Vector2) GetXNm() int64 {
	if m == nil {
		return 0
	}
	return m.XNm
}

func (m *Vector2) GetYNm() int64 {
	if m == nil {
		return 0
	}
	return m.YNm
}

// Angle is kiapi.common.types.Angle.
type Angle struct {
	ValueDegrees float64
}

func (*Angle) TypeName() string { return "kiapi.common.types.Angle" }

func (m *Angle) AppendWire(b []byte) []byte {
	return wire.AppendDouble(b, 1, m.ValueDegrees)
}

func (m *Angle) UnmarshalWire(b []byte) error {
	*m = Angle{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.ValueDegrees, err = f.Double()
		}
		return err
	})
}

func (m *Angle) GetValueDegrees() float64 {
	if m == nil {
		return 0
	}
	return m.ValueDegrees
}

// Text is kiapi.common.types.Text. Text attributes are not modelled.
type Text struct {
	Position  *Vector2
	Text      string
	Hyperlink string
}

func (*Text) TypeName() string { return "kiapi.common.types.Text" }

func (m *Text) AppendWire(b []byte) []byte {
	if m.Position != nil {
		b = appendEmbedded(b, 1, m.Position)
	}
	b = wire.AppendString(b, 3, m.Text)
	b = wire.AppendString(b, 4, m.Hyperlink)
	return b
}

func (m *Text) UnmarshalWire(b []byte) error {
	*m = Text{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Position, err = embedded[Vector2](f)
		case 3:
			m.Text, err = f.String()
		case 4:
			m.Hyperlink, err = f.String()
		}
		return err
	})
}

func (m *Text) GetText() string {
	if m == nil {
		return ""
	}
	return m.Text
}
