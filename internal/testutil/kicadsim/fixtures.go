package kicadsim

import (
	"math"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/protocol"
	"github.com/oklog/ulid/v2"
	"google.golang.org/protobuf/types/known/anypb"
)

// Footprint describes a placed footprint in display units for building
// wire fixtures.
type Footprint struct {
	ID            string
	Reference     string
	Value         string
	Library       string
	FootprintName string
	Description   string
	Layer         kiapi.BoardLayer
	X, Y          float64
	Rotation      float64
	Locked        bool
	DoNotPopulate bool
	ExcludeBOM    bool
}

// Instance builds the wire record. An empty ID gets a fresh one.
func (f Footprint) Instance() *kiapi.FootprintInstance {
	id := f.ID
	if id == "" {
		id = ulid.Make().String()
	}
	fp := &kiapi.FootprintInstance{
		ID:          &kiapi.KIID{Value: id},
		Position:    &kiapi.Vector2{XNm: nm(f.X), YNm: nm(f.Y)},
		Orientation: &kiapi.Angle{ValueDegrees: f.Rotation},
		Layer:       f.Layer,
		Locked:      kiapi.LockedUnlocked,
		Definition: &kiapi.Footprint{ID: &kiapi.LibraryIdentifier{
			LibraryNickname: f.Library,
			EntryName:       f.FootprintName,
		}},
		ReferenceField:   textField("Reference", f.Reference),
		ValueField:       textField("Value", f.Value),
		DescriptionField: textField("Description", f.Description),
		Attributes: &kiapi.FootprintAttributes{
			ExcludeFromBillOfMaterials: f.ExcludeBOM,
			DoNotPopulate:              f.DoNotPopulate,
		},
	}
	if f.Locked {
		fp.Locked = kiapi.LockedLocked
	}
	return fp
}

// PackFootprint returns f as a GetItems item.
func PackFootprint(f Footprint) *anypb.Any {
	return protocol.Pack(f.Instance())
}

// Board returns a one-document GetOpenDocuments reply for filename.
func Board(filename, project string) *kiapi.GetOpenDocumentsResponse {
	doc := &kiapi.DocumentSpecifier{
		Type:       kiapi.DocTypePCB,
		Identifier: kiapi.BoardFilename(filename),
	}
	if project != "" {
		doc.Project = &kiapi.ProjectSpecifier{Name: project}
	}
	return &kiapi.GetOpenDocumentsResponse{Documents: []*kiapi.DocumentSpecifier{doc}}
}

// ServeBoard installs version, document and item handlers for one board.
func (s *Server) ServeBoard(version string, filename string, footprints ...Footprint) {
	s.Reply(&kiapi.GetVersion{}, &kiapi.GetVersionResponse{Version: &kiapi.KiCadVersion{FullVersion: version}})
	s.Reply(&kiapi.Ping{}, &kiapi.Empty{})
	s.Reply(&kiapi.GetOpenDocuments{}, Board(filename, ""))
	items := make([]*anypb.Any, 0, len(footprints))
	for _, f := range footprints {
		items = append(items, PackFootprint(f))
	}
	s.Reply(&kiapi.GetItems{}, &kiapi.GetItemsResponse{Status: kiapi.ItemRequestOK, Items: items})
}

func textField(name, text string) *kiapi.Field {
	if text == "" {
		return nil
	}
	return &kiapi.Field{
		Name:    name,
		Text:    &kiapi.BoardText{Text: &kiapi.Text{Text: text}},
		Visible: true,
	}
}

func nm(mm float64) int64 {
	return int64(math.Round(mm * 1_000_000))
}
