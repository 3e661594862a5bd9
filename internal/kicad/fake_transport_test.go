package kicad

import (
	"io"
	"testing"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/protocol"
	"github.com/danmuck/kicadctl/internal/testutil/testlog"
	"github.com/danmuck/kicadctl/internal/transport"
)

// fakeTransport replays queued replies and records sent requests.
type fakeTransport struct {
	replies [][]byte
	sent    [][]byte
	sendErr error
	closed  bool
}

func (f *fakeTransport) Send(msg []byte) error {
	if f.sendErr != nil {
		return &transport.Error{Op: "send", Addr: "fake", Err: f.sendErr}
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) Recv() ([]byte, error) {
	if len(f.replies) == 0 {
		return nil, &transport.Error{Op: "recv", Addr: "fake", Err: io.EOF}
	}
	msg := f.replies[0]
	f.replies = f.replies[1:]
	return msg, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func (f *fakeTransport) queue(b []byte) {
	f.replies = append(f.replies, b)
}

func (f *fakeTransport) queueOK(t *testing.T, token string, m kiapi.Message) {
	t.Helper()
	b, err := protocol.EncodeResponse(token, m)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}
	f.queue(b)
}

// request decodes the i-th sent request.
func (f *fakeTransport) request(t *testing.T, i int) *kiapi.APIRequest {
	t.Helper()
	if i >= len(f.sent) {
		t.Fatalf("expected at least %d sent requests, got %d", i+1, len(f.sent))
	}
	req, err := protocol.DecodeRequest(f.sent[i])
	if err != nil {
		t.Fatalf("decode request %d: %v", i, err)
	}
	return req
}

// newTestClient returns a client over f without the version handshake.
func newTestClient(t *testing.T, f *fakeTransport, opts ...Option) *Client {
	t.Helper()
	logger := testlog.Start(t)
	cfg := ConnectionConfig{SocketPath: "ipc:///tmp/kicad/test.sock", ClientName: "kicadctl-test0001"}
	return newClient(f, cfg, append([]Option{WithLogger(logger)}, opts...)...)
}

func versionReply(major, minor, patch uint32, full string) *kiapi.GetVersionResponse {
	return &kiapi.GetVersionResponse{Version: &kiapi.KiCadVersion{
		Major: major, Minor: minor, Patch: patch, FullVersion: full,
	}}
}

func boardDocs(names ...string) *kiapi.GetOpenDocumentsResponse {
	resp := &kiapi.GetOpenDocumentsResponse{}
	for _, n := range names {
		resp.Documents = append(resp.Documents, &kiapi.DocumentSpecifier{
			Type:       kiapi.DocTypePCB,
			Identifier: kiapi.BoardFilename(n),
		})
	}
	return resp
}
