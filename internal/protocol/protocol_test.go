package protocol

import (
	"errors"
	"testing"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"google.golang.org/protobuf/types/known/anypb"
)

func TestPackUsesFullTypeURL(t *testing.T) {
	a := Pack(&kiapi.GetVersion{})
	if a.GetTypeUrl() != "type.googleapis.com/kiapi.common.commands.GetVersion" {
		t.Fatalf("unexpected type url %q", a.GetTypeUrl())
	}
	if len(a.GetValue()) != 0 {
		t.Fatalf("expected empty value for empty message, got %d bytes", len(a.GetValue()))
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	in := &kiapi.GetVersionResponse{Version: &kiapi.KiCadVersion{
		Major: 9, Minor: 0, Patch: 2, FullVersion: "9.0.2",
	}}
	var out kiapi.GetVersionResponse
	if err := Unpack(Pack(in), &out); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	v := out.GetVersionOrEmpty()
	if v.Major != 9 || v.Patch != 2 || v.FullVersion != "9.0.2" {
		t.Fatalf("unexpected version %+v", v)
	}
}

func TestUnpackTypeMismatch(t *testing.T) {
	out := kiapi.GetVersionResponse{Version: &kiapi.KiCadVersion{Major: 1}}
	err := Unpack(Pack(&kiapi.Empty{}), &out)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if mismatch.Want != "kiapi.common.commands.GetVersionResponse" || mismatch.Got != "google.protobuf.Empty" {
		t.Fatalf("unexpected mismatch detail %+v", mismatch)
	}
	if out.Version.Major != 1 {
		t.Fatalf("mismatch must leave destination untouched")
	}
}

func TestUnpackNilAny(t *testing.T) {
	if err := Unpack(nil, &kiapi.Empty{}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestUnpackMalformedValue(t *testing.T) {
	a := &anypb.Any{
		TypeUrl: "type.googleapis.com/kiapi.common.commands.GetVersionResponse",
		Value:   []byte{0x0a, 0x05, 0x08},
	}
	err := Unpack(a, &kiapi.GetVersionResponse{})
	if !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	h := kiapi.APIRequestHeader{KicadToken: "tok", ClientName: "kicadctl-test"}
	b, err := EncodeRequest(h, &kiapi.GetOpenDocuments{Type: kiapi.DocTypePCB})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req, err := DecodeRequest(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.GetHeader().ClientName != "kicadctl-test" || req.GetHeader().KicadToken != "tok" {
		t.Fatalf("unexpected header %+v", req.GetHeader())
	}
	var cmd kiapi.GetOpenDocuments
	if err := Unpack(req.Message, &cmd); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if cmd.Type != kiapi.DocTypePCB {
		t.Fatalf("expected DOCTYPE_PCB, got %v", cmd.Type)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	b, err := EncodeResponse("T1", &kiapi.Empty{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	resp, err := DecodeResponse(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.GetHeader().GetKicadToken() != "T1" {
		t.Fatalf("expected token T1, got %q", resp.GetHeader().GetKicadToken())
	}
	if resp.GetStatus().GetStatus() != kiapi.StatusOK {
		t.Fatalf("expected AS_OK, got %v", resp.GetStatus().GetStatus())
	}
	if err := Unpack(resp.GetMessage(), &kiapi.Empty{}); err != nil {
		t.Fatalf("unpack: %v", err)
	}
}

func TestErrorResponseCarriesStatus(t *testing.T) {
	resp, err := DecodeResponse(EncodeErrorResponse("", kiapi.StatusBusy, "busy"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.GetStatus().GetStatus() != kiapi.StatusBusy || resp.GetStatus().GetErrorMessage() != "busy" {
		t.Fatalf("unexpected status %+v", resp.GetStatus())
	}
	if resp.GetMessage() != nil {
		t.Fatalf("error response should carry no payload")
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"truncated": {0x12, 0x04, 0x08},
		"bad tag":   {0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for name, b := range cases {
		if _, err := DecodeResponse(b); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("%s: expected ErrMalformedEnvelope, got %v", name, err)
		}
	}
}

func TestDecodeRequestWithoutPayload(t *testing.T) {
	b := kiapi.Marshal(&kiapi.APIRequest{Header: &kiapi.APIRequestHeader{ClientName: "x"}})
	if _, err := DecodeRequest(b); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
	}
}
