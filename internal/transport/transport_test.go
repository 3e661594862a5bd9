package transport

import (
	"errors"
	"testing"

	"github.com/danmuck/kicadctl/internal/testutil/testlog"
	"github.com/oklog/ulid/v2"
	"go.nanomsg.org/mangos/v3/protocol/rep"
)

func startEcho(t *testing.T) string {
	t.Helper()
	sock, err := rep.NewSocket()
	if err != nil {
		t.Fatalf("rep socket: %v", err)
	}
	addr := "inproc://transport-test-" + ulid.Make().String()
	if err := sock.Listen(addr); err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg, err := sock.Recv()
			if err != nil {
				return
			}
			if err := sock.Send(append([]byte("echo:"), msg...)); err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() {
		_ = sock.Close()
		<-done
	})
	return addr
}

func TestReqSocketRoundTrip(t *testing.T) {
	testlog.Start(t)
	addr := startEcho(t)

	s, err := Dial(addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer s.Close()

	for _, msg := range []string{"one", "two"} {
		if err := s.Send([]byte(msg)); err != nil {
			t.Fatalf("send: %v", err)
		}
		got, err := s.Recv()
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		if string(got) != "echo:"+msg {
			t.Fatalf("unexpected reply %q", got)
		}
	}
}

func TestDialWithoutListenerFails(t *testing.T) {
	testlog.Start(t)
	_, err := Dial("inproc://nobody-home-" + ulid.Make().String())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	var terr *Error
	if !errors.As(err, &terr) || terr.Op != "dial" {
		t.Fatalf("expected dial *Error, got %#v", err)
	}
}

func TestUseAfterClose(t *testing.T) {
	testlog.Start(t)
	addr := startEcho(t)
	s, err := Dial(addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := s.Send([]byte("x")); !errors.Is(err, ErrClosed) || !errors.Is(err, ErrTransport) {
		t.Fatalf("expected closed transport error, got %v", err)
	}
	if _, err := s.Recv(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
