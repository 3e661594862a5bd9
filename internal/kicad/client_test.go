package kicad

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/protocol"
	"github.com/danmuck/kicadctl/internal/testutil/testlog"
	"google.golang.org/protobuf/types/known/anypb"
)

func TestConnectHandshakeReturnsVersionAndToken(t *testing.T) {
	logger := testlog.Start(t)
	f := &fakeTransport{}
	f.queueOK(t, "T1", versionReply(7, 0, 5, "7.0.5"))

	c, err := ConnectWith(context.Background(), f, ConnectionConfig{ClientName: "kicadctl-abcd1234"}, WithLogger(logger))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	want := KiCadVersionInfo{Major: 7, Minor: 0, Patch: 5, Full: "7.0.5"}
	if c.Version() != want {
		t.Fatalf("expected %+v, got %+v", want, c.Version())
	}
	if c.Token() != "T1" {
		t.Fatalf("expected token T1, got %q", c.Token())
	}

	req := f.request(t, 0)
	if req.GetHeader().GetClientName() != "kicadctl-abcd1234" || req.GetHeader().GetKicadToken() != "" {
		t.Fatalf("unexpected handshake header %+v", req.GetHeader())
	}
	if req.GetMessage().MessageName() != "kiapi.common.commands.GetVersion" {
		t.Fatalf("unexpected handshake payload %q", req.GetMessage().GetTypeUrl())
	}
	if f.closed {
		t.Fatalf("transport must stay open after a successful handshake")
	}
}

func TestConnectHandshakeFailureClosesTransport(t *testing.T) {
	logger := testlog.Start(t)
	f := &fakeTransport{}
	f.queue(protocol.EncodeErrorResponse("", kiapi.StatusNotReady, "starting"))

	c, err := ConnectWith(context.Background(), f, ConnectionConfig{}, WithLogger(logger))
	if c != nil {
		t.Fatalf("expected no client on failed handshake")
	}
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("expected ErrAPI, got %v", err)
	}
	if !f.closed {
		t.Fatalf("expected transport to be closed")
	}
}

func TestTokenFirstSuccessWins(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	ctx := context.Background()

	f.queueOK(t, "T1", versionReply(9, 0, 0, "9.0.0"))
	f.queueOK(t, "T2", &kiapi.Empty{})
	f.queueOK(t, "T2", &kiapi.Empty{})

	if _, err := c.GetVersion(ctx); err != nil {
		t.Fatalf("get version: %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if got := f.request(t, 1).GetHeader().GetKicadToken(); got != "T1" {
		t.Fatalf("second request should carry T1, got %q", got)
	}
	if got := f.request(t, 2).GetHeader().GetKicadToken(); got != "T1" {
		t.Fatalf("third request should still carry T1, got %q", got)
	}
	if c.Token() != "T1" {
		t.Fatalf("expected token T1, got %q", c.Token())
	}
}

func TestAPIErrorLeavesTokenUnsetAndSkipsUnpack(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queue(protocol.EncodeErrorResponse("T9", kiapi.StatusBusy, "KiCad is busy"))

	_, err := c.GetVersion(context.Background())
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("expected ErrAPI, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != kiapi.StatusBusy || apiErr.Message != "KiCad is busy" {
		t.Fatalf("unexpected api error %#v", err)
	}
	if errors.Is(err, ErrProtocol) {
		t.Fatalf("error status must not be reported as a protocol error")
	}
	if c.Token() != "" {
		t.Fatalf("error reply must not set the token, got %q", c.Token())
	}
	if !IsUnavailable(err) {
		t.Fatalf("busy should count as unavailable")
	}
}

func TestGetBoardNoDocuments(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", boardDocs())

	_, err := c.GetBoard(context.Background())
	if !errors.Is(err, ErrNoBoardOpen) {
		t.Fatalf("expected ErrNoBoardOpen, got %v", err)
	}
	var cmd kiapi.GetOpenDocuments
	if err := protocol.Unpack(f.request(t, 0).GetMessage(), &cmd); err != nil {
		t.Fatalf("unpack request: %v", err)
	}
	if cmd.Type != kiapi.DocTypePCB {
		t.Fatalf("expected a board document query, got %v", cmd.Type)
	}
}

func TestGetBoardFirstDocument(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", boardDocs("demo.kicad_pcb", "other.kicad_pcb"))

	board, err := c.GetBoard(context.Background())
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if board.Name != "demo.kicad_pcb" || board.ProjectName != nil {
		t.Fatalf("unexpected board %+v", board)
	}
	if board.Document == nil || board.Document.Identifier != kiapi.BoardFilename("demo.kicad_pcb") {
		t.Fatalf("unexpected document %+v", board.Document)
	}
}

func TestGetBoardProjectAndIdentifierVariants(t *testing.T) {
	cases := []struct {
		id   kiapi.DocumentIdentifier
		want string
	}{
		{id: &kiapi.LibraryIdentifier{LibraryNickname: "Lib", EntryName: "Part"}, want: "Lib:Part"},
		{id: &kiapi.SheetPath{PathHumanReadable: "/Power"}, want: "/Power"},
		{id: nil, want: ""},
	}
	for _, tc := range cases {
		f := &fakeTransport{}
		c := newTestClient(t, f)
		f.queueOK(t, "T1", &kiapi.GetOpenDocumentsResponse{Documents: []*kiapi.DocumentSpecifier{{
			Type:       kiapi.DocTypePCB,
			Identifier: tc.id,
			Project:    &kiapi.ProjectSpecifier{Name: "demo"},
		}}})
		board, err := c.GetBoard(context.Background())
		if err != nil {
			t.Fatalf("get board: %v", err)
		}
		if board.Name != tc.want {
			t.Fatalf("expected name %q, got %q", tc.want, board.Name)
		}
		if board.ProjectName == nil || *board.ProjectName != "demo" {
			t.Fatalf("expected project demo, got %v", board.ProjectName)
		}
	}
}

func TestGetFootprintsSkipsAndCountsUndecodableItems(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", boardDocs("demo.kicad_pcb"))
	f.queueOK(t, "T1", &kiapi.GetItemsResponse{
		Status: kiapi.ItemRequestOK,
		Items: []*anypb.Any{
			protocol.Pack(&kiapi.FootprintInstance{
				ID:             &kiapi.KIID{Value: "abcdef0123"},
				Position:       &kiapi.Vector2{XNm: 10_000_000, YNm: 5_500_000},
				Layer:          kiapi.LayerFCu,
				ReferenceField: &kiapi.Field{Text: &kiapi.BoardText{Text: &kiapi.Text{Text: "R1"}}},
			}),
			protocol.Pack(&kiapi.BoardText{Text: &kiapi.Text{Text: "not a footprint"}}),
			{TypeUrl: kiapi.TypeURLPrefix + "kiapi.board.types.FootprintInstance", Value: []byte{0x0a, 0x09}},
		},
	})

	list, err := c.GetFootprints(context.Background())
	if err != nil {
		t.Fatalf("get footprints: %v", err)
	}
	if len(list.Footprints) != 1 || list.Skipped != 2 {
		t.Fatalf("expected 1 footprint and 2 skipped, got %d and %d", len(list.Footprints), list.Skipped)
	}
	fp := list.Footprints[0]
	if fp.Reference != "R1" || fp.X != 10 || fp.Y != 5.5 || fp.Layer != "F.Cu" {
		t.Fatalf("unexpected footprint %+v", fp)
	}

	var cmd kiapi.GetItems
	if err := protocol.Unpack(f.request(t, 1).GetMessage(), &cmd); err != nil {
		t.Fatalf("unpack request: %v", err)
	}
	if len(cmd.Types) != 1 || cmd.Types[0] != kiapi.ObjectTypePCBFootprint {
		t.Fatalf("unexpected item types %v", cmd.Types)
	}
	if cmd.Header.Document.Identifier != kiapi.BoardFilename("demo.kicad_pcb") {
		t.Fatalf("items must be scoped to the board document, got %+v", cmd.Header.Document)
	}
}

func TestGetFootprintsNoBoard(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", boardDocs())
	if _, err := c.GetFootprints(context.Background()); !errors.Is(err, ErrNoBoardOpen) {
		t.Fatalf("expected ErrNoBoardOpen, got %v", err)
	}
	if len(f.sent) != 1 {
		t.Fatalf("expected no item request without a board, sent %d", len(f.sent))
	}
}

func TestGetItemsRejectedStatus(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", &kiapi.GetItemsResponse{Status: kiapi.ItemRequestDocumentNotFound})

	doc := &kiapi.DocumentSpecifier{Type: kiapi.DocTypePCB, Identifier: kiapi.BoardFilename("gone.kicad_pcb")}
	_, err := c.GetItems(context.Background(), doc, kiapi.ObjectTypePCBFootprint)
	if !errors.Is(err, ErrItemRequest) {
		t.Fatalf("expected ErrItemRequest, got %v", err)
	}
}

func TestTransportFailureSurfaces(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)

	_, err := c.GetVersion(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Fatalf("transport failure should count as unavailable")
	}

	f.sendErr = errors.New("broken pipe")
	if err := c.Ping(context.Background()); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport on send, got %v", err)
	}
}

func TestMalformedReply(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queue([]byte{0x12, 0x08, 0x01})

	_, err := c.GetVersion(context.Background())
	if !errors.Is(err, protocol.ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestWrongReplyTypeIsProtocolError(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	f.queueOK(t, "T1", &kiapi.Empty{})

	_, err := c.GetVersion(context.Background())
	if !errors.Is(err, ErrProtocol) || !errors.Is(err, protocol.ErrTypeMismatch) {
		t.Fatalf("expected protocol type mismatch, got %v", err)
	}
	if c.Token() != "T1" {
		t.Fatalf("an OK status captures the token before unpacking, got %q", c.Token())
	}
}

func TestCanceledContextFailsBeforeSend(t *testing.T) {
	f := &fakeTransport{}
	c := newTestClient(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(f.sent) != 0 {
		t.Fatalf("nothing should be sent on a canceled context")
	}
}

func TestCallRecorderSeesEveryExchange(t *testing.T) {
	type call struct{ command, status string }
	var calls []call
	f := &fakeTransport{}
	c := newTestClient(t, f, WithCallRecorder(func(command, status string, _ time.Duration) {
		calls = append(calls, call{command, status})
	}))
	f.queueOK(t, "T1", &kiapi.Empty{})
	f.queue(protocol.EncodeErrorResponse("", kiapi.StatusUnhandled, "no handler"))

	_ = c.Ping(context.Background())
	_, _ = c.GetVersion(context.Background())
	_ = c.Ping(context.Background())

	want := []call{
		{"Ping", "AS_OK"},
		{"GetVersion", "AS_UNHANDLED"},
		{"Ping", "transport_error"},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d: expected %+v, got %+v", i, want[i], calls[i])
		}
	}
}
