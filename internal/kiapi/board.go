package kiapi

import "github.com/danmuck/kicadctl/internal/protocol/wire"

// BoardText is kiapi.board.types.BoardText.
type BoardText struct {
	ID       *KIID
	Text     *Text
	Layer    BoardLayer
	Knockout bool
	Locked   LockedState
}

func (*BoardText) TypeName() string { return "kiapi.board.types.BoardText" }

func (m *BoardText) AppendWire(b []byte) []byte {
	if m.ID != nil {
		b = appendEmbedded(b, 1, m.ID)
	}
	if m.Text != nil {
		b = appendEmbedded(b, 2, m.Text)
	}
	b = wire.AppendEnum(b, 3, int32(m.Layer))
	b = wire.AppendBool(b, 4, m.Knockout)
	b = wire.AppendEnum(b, 5, int32(m.Locked))
	return b
}

func (m *BoardText) UnmarshalWire(b []byte) error {
	*m = BoardText{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		var v int32
		switch f.Num {
		case 1:
			m.ID, err = embedded[KIID](f)
		case 2:
			m.Text, err = embedded[Text](f)
		case 3:
			v, err = f.Enum()
			m.Layer = BoardLayer(v)
		case 4:
			m.Knockout, err = f.Bool()
		case 5:
			v, err = f.Enum()
			m.Locked = LockedState(v)
		}
		return err
	})
}

func (m *BoardText) GetText() *Text {
	if m == nil {
		return nil
	}
	return m.Text
}

// FieldID is kiapi.board.types.FieldId.
type FieldID struct {
	ID int32
}

func (*FieldID) TypeName() string { return "kiapi.board.types.FieldId" }

func (m *FieldID) AppendWire(b []byte) []byte {
	return wire.AppendInt32(b, 1, m.ID)
}

func (m *FieldID) UnmarshalWire(b []byte) error {
	*m = FieldID{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.ID, err = f.Int32()
		}
		return err
	})
}

// Field is kiapi.board.types.Field, one footprint text field.
type Field struct {
	ID      *FieldID
	Name    string
	Text    *BoardText
	Visible bool
}

func (*Field) TypeName() string { return "kiapi.board.types.Field" }

func (m *Field) AppendWire(b []byte) []byte {
	if m.ID != nil {
		b = appendEmbedded(b, 1, m.ID)
	}
	b = wire.AppendString(b, 2, m.Name)
	if m.Text != nil {
		b = appendEmbedded(b, 3, m.Text)
	}
	b = wire.AppendBool(b, 4, m.Visible)
	return b
}

func (m *Field) UnmarshalWire(b []byte) error {
	*m = Field{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.ID, err = embedded[FieldID](f)
		case 2:
			m.Name, err = f.String()
		case 3:
			m.Text, err = embedded[BoardText](f)
		case 4:
			m.Visible, err = f.Bool()
		}
		return err
	})
}

func (m *Field) GetText() *BoardText {
	if m == nil {
		return nil
	}
	return m.Text
}

// FootprintAttributes is kiapi.board.types.FootprintAttributes.
type FootprintAttributes struct {
	Description                    string
	Keywords                       string
	NotInSchematic                 bool
	ExcludeFromPositionFiles       bool
	ExcludeFromBillOfMaterials     bool
	ExemptFromCourtyardRequirement bool
	DoNotPopulate                  bool
}

func (*FootprintAttributes) TypeName() string { return "kiapi.board.types.FootprintAttributes" }

func (m *FootprintAttributes) AppendWire(b []byte) []byte {
	b = wire.AppendString(b, 1, m.Description)
	b = wire.AppendString(b, 2, m.Keywords)
	b = wire.AppendBool(b, 3, m.NotInSchematic)
	b = wire.AppendBool(b, 4, m.ExcludeFromPositionFiles)
	b = wire.AppendBool(b, 5, m.ExcludeFromBillOfMaterials)
	b = wire.AppendBool(b, 6, m.ExemptFromCourtyardRequirement)
	b = wire.AppendBool(b, 7, m.DoNotPopulate)
	return b
}

func (m *FootprintAttributes) UnmarshalWire(b []byte) error {
	*m = FootprintAttributes{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Description, err = f.String()
		case 2:
			m.Keywords, err = f.String()
		case 3:
			m.NotInSchematic, err = f.Bool()
		case 4:
			m.ExcludeFromPositionFiles, err = f.Bool()
		case 5:
			m.ExcludeFromBillOfMaterials, err = f.Bool()
		case 6:
			m.ExemptFromCourtyardRequirement, err = f.Bool()
		case 7:
			m.DoNotPopulate, err = f.Bool()
		}
		return err
	})
}

func (m *FootprintAttributes) GetExcludeFromBillOfMaterials() bool {
	return m != nil && m.ExcludeFromBillOfMaterials
}

func (m *FootprintAttributes) GetDoNotPopulate() bool {
	return m != nil && m.DoNotPopulate
}

// Footprint is kiapi.board.types.Footprint, the library definition part of
// a placed footprint. Pads, shapes and groups are not modelled.
type Footprint struct {
	ID         *LibraryIdentifier
	Anchor     *Vector2
	Attributes *FootprintAttributes
}

func (*Footprint) TypeName() string { return "kiapi.board.types.Footprint" }

func (m *Footprint) AppendWire(b []byte) []byte {
	if m.ID != nil {
		b = appendEmbedded(b, 1, m.ID)
	}
	if m.Anchor != nil {
		b = appendEmbedded(b, 2, m.Anchor)
	}
	if m.Attributes != nil {
		b = appendEmbedded(b, 3, m.Attributes)
	}
	return b
}

func (m *Footprint) UnmarshalWire(b []byte) error {
	*m = Footprint{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.ID, err = embedded[LibraryIdentifier](f)
		case 2:
			m.Anchor, err = embedded[Vector2](f)
		case 3:
			m.Attributes, err = embedded[FootprintAttributes](f)
		}
		return err
	})
}

func (m *Footprint) GetID() *LibraryIdentifier {
	if m == nil {
		return nil
	}
	return m.ID
}

// FootprintInstance is kiapi.board.types.FootprintInstance, one placed
// footprint on a board.
type FootprintInstance struct {
	ID               *KIID
	Position         *Vector2
	Orientation      *Angle
	Layer            BoardLayer
	Locked           LockedState
	Definition       *Footprint
	ReferenceField   *Field
	ValueField       *Field
	DatasheetField   *Field
	DescriptionField *Field
	Attributes       *FootprintAttributes
}

func (*FootprintInstance) TypeName() string { return "kiapi.board.types.FootprintInstance" }

func (m *FootprintInstance) AppendWire(b []byte) []byte {
	if m.ID != nil {
		b = appendEmbedded(b, 1, m.ID)
	}
	if m.Position != nil {
		b = appendEmbedded(b, 2, m.Position)
	}
	if m.Orientation != nil {
		b = appendEmbedded(b, 3, m.Orientation)
	}
	b = wire.AppendEnum(b, 4, int32(m.Layer))
	b = wire.AppendEnum(b, 5, int32(m.Locked))
	if m.Definition != nil {
		b = appendEmbedded(b, 6, m.Definition)
	}
	if m.ReferenceField != nil {
		b = appendEmbedded(b, 7, m.ReferenceField)
	}
	if m.ValueField != nil {
		b = appendEmbedded(b, 8, m.ValueField)
	}
	if m.DatasheetField != nil {
		b = appendEmbedded(b, 9, m.DatasheetField)
	}
	if m.DescriptionField != nil {
		b = appendEmbedded(b, 10, m.DescriptionField)
	}
	if m.Attributes != nil {
		b = appendEmbedded(b, 11, m.Attributes)
	}
	return b
}

func (m *FootprintInstance) UnmarshalWire(b []byte) error {
	*m = FootprintInstance{}
	return wire.Walk(b, func(f wire.Field) (err error) {
		var v int32
		switch f.Num {
		case 1:
			m.ID, err = embedded[KIID](f)
		case 2:
			m.Position, err = embedded[Vector2](f)
		case 3:
			m.Orientation, err = embedded[Angle](f)
		case 4:
			v, err = f.Enum()
			m.Layer = BoardLayer(v)
		case 5:
			v, err = f.Enum()
			m.Locked = LockedState(v)
		case 6:
			m.Definition, err = embedded[Footprint](f)
		case 7:
			m.ReferenceField, err = embedded[Field](f)
		case 8:
			m.ValueField, err = embedded[Field](f)
		case 9:
			m.DatasheetField, err = embedded[Field](f)
		case 10:
			m.DescriptionField, err = embedded[Field](f)
		case 11:
			m.Attributes, err = embedded[FootprintAttributes](f)
		}
		return err
	})
}

func (m *FootprintInstance) GetID() *KIID {
	if m == nil {
		return nil
	}
	return m.ID
}

func (m *FootprintInstance) GetPosition() *Vector2 {
	if m == nil {
		return nil
	}
	return m.Position
}

func (m *FootprintInstance) GetOrientation() *Angle {
	if m == nil {
		return nil
	}
	return m.Orientation
}

func (m *FootprintInstance) GetLayer() BoardLayer {
	if m == nil {
		return LayerUnknown
	}
	return m.Layer
}

func (m *FootprintInstance) GetLocked() LockedState {
	if m == nil {
		return LockedUnknown
	}
	return m.Locked
}

func (m *FootprintInstance) GetDefinition() *Footprint {
	if m == nil {
		return nil
	}
	return m.Definition
}

func (m *FootprintInstance) GetReferenceField() *Field {
	if m == nil {
		return nil
	}
	return m.ReferenceField
}

func (m *FootprintInstance) GetValueField() *Field {
	if m == nil {
		return nil
	}
	return m.ValueField
}

func (m *FootprintInstance) GetDescriptionField() *Field {
	if m == nil {
		return nil
	}
	return m.DescriptionField
}

func (m *FootprintInstance) GetAttributes() *FootprintAttributes {
	if m == nil {
		return nil
	}
	return m.Attributes
}
