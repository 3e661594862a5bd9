package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/testutil/testlog"
)

func TestHeaderCarriesNameAndToken(t *testing.T) {
	testlog.Start(t)
	s := New("kicadctl-abc", "")
	h := s.Header()
	if h.ClientName != "kicadctl-abc" || h.KicadToken != "" {
		t.Fatalf("unexpected header %+v", h)
	}
}

func TestObserveFirstSuccessWins(t *testing.T) {
	testlog.Start(t)
	s := New("c", "")
	if !s.Observe(kiapi.StatusOK, "T1") {
		t.Fatalf("expected first OK token to be captured")
	}
	if s.Observe(kiapi.StatusOK, "T2") {
		t.Fatalf("later token must not be captured")
	}
	if s.Token() != "T1" || s.Header().KicadToken != "T1" {
		t.Fatalf("expected T1, got %q", s.Token())
	}
}

func TestObserveIgnoresErrorsAndEmptyTokens(t *testing.T) {
	testlog.Start(t)
	s := New("c", "")
	if s.Observe(kiapi.StatusBusy, "T1") {
		t.Fatalf("error status must not capture a token")
	}
	if s.Observe(kiapi.StatusOK, "") {
		t.Fatalf("empty token must not be captured")
	}
	if s.Token() != "" {
		t.Fatalf("expected empty token, got %q", s.Token())
	}
	if !s.Observe(kiapi.StatusOK, "T3") || s.Token() != "T3" {
		t.Fatalf("expected T3 after first success, got %q", s.Token())
	}
}

func TestPreconfiguredTokenIsKept(t *testing.T) {
	testlog.Start(t)
	s := New("c", "preset")
	if s.Observe(kiapi.StatusOK, "T1") || s.Token() != "preset" {
		t.Fatalf("preconfigured token must be kept, got %q", s.Token())
	}
}

func TestNextBackoffDelayDeterministicNoJitter(t *testing.T) {
	testlog.Start(t)
	cfg := BackoffConfig{
		InitialDelay: 250 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Second,
	}
	if got := NextBackoffDelay(cfg, 1, nil); got != 250*time.Millisecond {
		t.Fatalf("attempt1 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 2, nil); got != 500*time.Millisecond {
		t.Fatalf("attempt2 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 3, nil); got != time.Second {
		t.Fatalf("attempt3 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 6, nil); got != 5*time.Second {
		t.Fatalf("attempt6 got=%v", got)
	}
}

func TestNextBackoffDelayJitterRange(t *testing.T) {
	testlog.Start(t)
	cfg := BackoffConfig{
		InitialDelay: 250 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Second,
		Jitter:       true,
	}
	rng := rand.New(rand.NewSource(7))
	got := NextBackoffDelay(cfg, 3, rng)
	if got < 500*time.Millisecond || got > 1500*time.Millisecond {
		t.Fatalf("jitter out of range: %v", got)
	}
}

func TestBackoffMaxAttemptsAndReset(t *testing.T) {
	testlog.Start(t)
	b := NewBackoff(BackoffConfig{InitialDelay: time.Millisecond, Multiplier: 2, MaxAttempts: 3}, nil)
	if d, ok := b.Next(); !ok || d != time.Millisecond {
		t.Fatalf("attempt1 got=%v ok=%v", d, ok)
	}
	if d, ok := b.Next(); !ok || d != 2*time.Millisecond {
		t.Fatalf("attempt2 got=%v ok=%v", d, ok)
	}
	if _, ok := b.Next(); ok {
		t.Fatalf("expected attempts exhausted")
	}
	b.Reset()
	if b.Attempts() != 0 {
		t.Fatalf("expected reset, got %d", b.Attempts())
	}
	if _, ok := b.Next(); !ok {
		t.Fatalf("expected retry after reset")
	}
}
