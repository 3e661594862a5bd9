package watch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/observability"
	"github.com/danmuck/kicadctl/internal/pcbworld"
	"github.com/danmuck/kicadctl/internal/protocol/session"
	"github.com/rs/zerolog"
)

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateLoadingBoard
	StateAnalyzing
	StateWatching
	StateTerminated
	StateFailed
)

var stateNames = [...]string{
	StateDisconnected: "disconnected",
	StateConnecting:   "connecting",
	StateLoadingBoard: "loading_board",
	StateAnalyzing:    "analyzing",
	StateWatching:     "watching",
	StateTerminated:   "terminated",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

type Config struct {
	Connection kicad.ConnectionConfig
	Interval   time.Duration
	Backoff    session.BackoffConfig
	// MaxRefreshes stops Run after that many successful refreshes; 0 runs
	// until the context ends.
	MaxRefreshes int
}

// Snapshot is the last published view of the board.
type Snapshot struct {
	State        string                   `json:"state"`
	Board        string                   `json:"board,omitempty"`
	KiCadVersion string                   `json:"kicad_version,omitempty"`
	Statistics   pcbworld.Statistics      `json:"statistics"`
	Breakdown    []pcbworld.CategoryCount `json:"breakdown"`
	Skipped      int                      `json:"skipped"`
	Refreshes    int                      `json:"refreshes"`
	Failures     int                      `json:"failures"`
	LastError    string                   `json:"last_error,omitempty"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// DialFunc opens a client; kicad.Connect in production.
type DialFunc func(ctx context.Context, cfg kicad.ConnectionConfig, opts ...kicad.Option) (*kicad.Client, error)

type Option func(*Supervisor)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Supervisor) {
		s.logger = logger
	}
}

// WithClientOptions are passed to every dial.
func WithClientOptions(opts ...kicad.Option) Option {
	return func(s *Supervisor) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

func WithDialer(dial DialFunc) Option {
	return func(s *Supervisor) {
		s.dial = dial
	}
}

// WithRefreshHook is called after every successful refresh.
func WithRefreshHook(fn func(Snapshot)) Option {
	return func(s *Supervisor) {
		s.onRefresh = fn
	}
}

// Supervisor owns one client and one world. Run must not be called
// concurrently; Snapshot and State may be read from any goroutine.
type Supervisor struct {
	cfg        Config
	world      *pcbworld.World
	logger     zerolog.Logger
	dial       DialFunc
	clientOpts []kicad.Option
	onRefresh  func(Snapshot)

	client *kicad.Client

	mu    sync.RWMutex
	state State
	snap  Snapshot
}

func New(cfg Config, world *pcbworld.World, opts ...Option) *Supervisor {
	s := &Supervisor{
		cfg:    cfg,
		world:  world,
		logger: zerolog.Nop(),
		dial:   kicad.Connect,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap.State = StateDisconnected.String()
	return s
}

func (s *Supervisor) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Supervisor) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.Breakdown = append([]pcbworld.CategoryCount(nil), s.snap.Breakdown...)
	return snap
}

// Run refreshes the world every Interval until ctx ends, MaxRefreshes is
// reached or the backoff gives up. Context cancellation is not an error.
func (s *Supervisor) Run(ctx context.Context) error {
	backoff := session.NewBackoff(s.cfg.Backoff, rand.New(rand.NewSource(time.Now().UnixNano())))
	defer s.disconnect()

	refreshes := 0
	for {
		err := s.refresh(ctx)
		observability.RecordWatchRefresh(err == nil)
		if err == nil {
			backoff.Reset()
			refreshes++
			if s.cfg.MaxRefreshes > 0 && refreshes >= s.cfg.MaxRefreshes {
				s.setState(StateTerminated)
				return nil
			}
			if !sleep(ctx, s.cfg.Interval) {
				s.setState(StateTerminated)
				return nil
			}
			continue
		}
		if ctx.Err() != nil {
			s.setState(StateTerminated)
			return nil
		}

		s.recordFailure(err)
		if !keepsClient(err) {
			s.disconnect()
			s.setState(StateDisconnected)
		}
		delay, ok := backoff.Next()
		if !ok {
			s.setState(StateFailed)
			return fmt.Errorf("watch: giving up after %d attempts: %w", backoff.Attempts(), err)
		}
		s.logger.Warn().
			Err(err).
			Int("attempt", backoff.Attempts()).
			Dur("retry_in", delay).
			Bool("unavailable", kicad.IsUnavailable(err)).
			Msg("watch.Supervisor.Run")
		if !sleep(ctx, delay) {
			s.setState(StateTerminated)
			return nil
		}
	}
}

func (s *Supervisor) refresh(ctx context.Context) error {
	if s.client == nil {
		s.setState(StateConnecting)
		c, err := s.dial(ctx, s.cfg.Connection, s.clientOpts...)
		if err != nil {
			return err
		}
		s.client = c
		s.logger.Info().
			Str("kicad", c.Version().Full).
			Str("client", c.ClientName()).
			Msg("watch.Supervisor.refresh connected")
	}

	s.setState(StateLoadingBoard)
	board, err := s.client.GetBoard(ctx)
	if err != nil {
		return err
	}
	list, err := s.client.GetFootprints(ctx)
	if err != nil {
		return err
	}

	s.setState(StateAnalyzing)
	s.world.Load(list.Footprints)
	stats := s.world.Statistics()
	breakdown := s.world.Breakdown()
	publishBoard(board.Name, stats, breakdown)

	s.mu.Lock()
	s.state = StateWatching
	s.snap.State = StateWatching.String()
	s.snap.Board = board.Name
	s.snap.KiCadVersion = s.client.Version().Full
	s.snap.Statistics = stats
	s.snap.Breakdown = breakdown
	s.snap.Skipped = list.Skipped
	s.snap.Refreshes++
	s.snap.LastError = ""
	s.snap.UpdatedAt = time.Now()
	snap := s.snap
	s.mu.Unlock()

	s.logger.Debug().
		Str("board", board.Name).
		Int("components", stats.Total).
		Int("mounting_holes", stats.MountingHoles).
		Int("skipped", list.Skipped).
		Msg("watch.Supervisor.refresh")
	if s.onRefresh != nil {
		s.onRefresh(snap)
	}
	return nil
}

func publishBoard(board string, stats pcbworld.Statistics, breakdown []pcbworld.CategoryCount) {
	observability.ResetBoardComponents()
	observability.RecordBoardComponents(board, "total", stats.Total)
	observability.RecordBoardComponents(board, "mounting_holes", stats.MountingHoles)
	for _, row := range breakdown {
		observability.RecordBoardComponents(board, row.Category, row.Count)
	}
}

// keepsClient reports whether the connection can be reused after err. A
// token mismatch means KiCad restarted and the session must start over.
func keepsClient(err error) bool {
	var apiErr *kicad.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code != kiapi.StatusTokenMismatch
	}
	return errors.Is(err, kicad.ErrNoBoardOpen) || errors.Is(err, kicad.ErrItemRequest)
}

func (s *Supervisor) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Failures++
	s.snap.LastError = err.Error()
}

func (s *Supervisor) disconnect() {
	if s.client == nil {
		return
	}
	if err := s.client.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("watch.Supervisor.disconnect")
	}
	s.client = nil
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.snap.State = st.String()
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
