package kicad

import "github.com/danmuck/kicadctl/internal/kiapi"

const (
	unknownValue     = "UNKNOWN"
	referencePrefix  = "REF_"
	referenceIDRunes = 6
)

// DecodeFootprint flattens a footprint instance. Every missing substructure
// has a fallback, so decoding never fails.
func DecodeFootprint(fp *kiapi.FootprintInstance) FootprintData {
	id := fp.GetID().GetValue()
	pos := fp.GetPosition()

	reference, ok := fieldText(fp.GetReferenceField())
	if !ok {
		reference = referencePrefix + idPrefix(id)
	}
	value, ok := fieldText(fp.GetValueField())
	if !ok {
		value = unknownValue
	}
	var description *string
	if d, ok := fieldText(fp.GetDescriptionField()); ok && d != "" {
		description = &d
	}
	attrs := fp.GetAttributes()

	return FootprintData{
		ID:             id,
		Reference:      reference,
		Value:          value,
		FootprintName:  fp.GetDefinition().GetID().GetEntryName(),
		X:              ToMM(pos.GetXNm()),
		Y:              ToMM(pos.GetYNm()),
		Rotation:       fp.GetOrientation().GetValueDegrees(),
		Layer:          LayerName(fp.GetLayer()),
		Description:    description,
		ExcludeFromBOM: attrs.GetExcludeFromBillOfMaterials(),
		DoNotPopulate:  attrs.GetDoNotPopulate(),
		Locked:         fp.GetLocked() == kiapi.LockedLocked,
	}
}

// fieldText follows field -> board text -> text. ok is false when any link
// is absent; a present but empty text is returned as "".
func fieldText(f *kiapi.Field) (string, bool) {
	t := f.GetText().GetText()
	if t == nil {
		return "", false
	}
	return t.Text, true
}

// idPrefix is the first six runes of id, or "" when id is shorter.
func idPrefix(id string) string {
	runes := []rune(id)
	if len(runes) < referenceIDRunes {
		return ""
	}
	return string(runes[:referenceIDRunes])
}

// LayerName renders a board layer for display: the two outer copper layers
// by their short KiCad names, other known layers by their enum name.
func LayerName(l kiapi.BoardLayer) string {
	switch l {
	case kiapi.LayerFCu:
		return "F.Cu"
	case kiapi.LayerBCu:
		return "B.Cu"
	}
	if !l.Known() {
		return kiapi.LayerUnknown.String()
	}
	return l.String()
}
