package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/kicadctl/internal/pcbworld"
	"github.com/danmuck/kicadctl/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type watchOptions struct {
	interval    time.Duration
	metricsAddr string
	maxAttempts int
	count       int
}

func watchCmd(a *app) *cobra.Command {
	var opts watchOptions
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep refreshing board statistics and serve them over HTTP",
		Long: `watch reconnects to KiCad with backoff, reloads the open board every
interval and prints a line whenever the statistics change. With a metrics
address it also serves /health, /ready, /status and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("interval") {
				a.cfg.Watch.Interval = opts.interval
			}
			if cmd.Flags().Changed("metrics-addr") {
				a.cfg.Watch.MetricsAddr = opts.metricsAddr
			}
			if cmd.Flags().Changed("max-attempts") {
				a.cfg.Watch.MaxAttempts = opts.maxAttempts
			}
			if a.cfg.Watch.Interval <= 0 {
				return fmt.Errorf("watch: interval must be positive")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd.OutOrStdout(), opts.count)
		},
	}
	flags := cmd.Flags()
	flags.DurationVar(&opts.interval, "interval", 0, "refresh interval (default from config, 2s)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve status and metrics on this address")
	flags.IntVar(&opts.maxAttempts, "max-attempts", 0, "consecutive failures before giving up, 0 retries forever")
	flags.IntVar(&opts.count, "count", 0, "stop after this many successful refreshes, 0 runs until interrupted")
	return cmd
}

func (a *app) runWatch(ctx context.Context, out io.Writer, count int) error {
	printer := &statsPrinter{out: out}
	sup := watch.New(watch.Config{
		Connection:   a.cfg.Connection(),
		Interval:     a.cfg.Watch.Interval,
		Backoff:      a.cfg.Backoff(),
		MaxRefreshes: count,
	}, pcbworld.New(a.logger),
		watch.WithLogger(a.logger),
		watch.WithClientOptions(a.clientOptions()...),
		watch.WithRefreshHook(printer.print),
	)

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServe := context.WithCancel(gctx)
	defer stopServe()

	g.Go(func() error {
		defer stopServe()
		return sup.Run(gctx)
	})
	if addr := a.cfg.Watch.MetricsAddr; addr != "" {
		router := watch.NewRouter(sup, a.cfg.Watch.CorsOrigins, a.logger)
		g.Go(func() error {
			return watch.Serve(serveCtx, addr, router, a.logger)
		})
	}
	return g.Wait()
}

// statsPrinter writes one line per refresh whose board or statistics differ
// from the previous one.
type statsPrinter struct {
	out   io.Writer
	board string
	last  pcbworld.Statistics
	seen  bool
}

func (p *statsPrinter) print(s watch.Snapshot) {
	if p.seen && s.Board == p.board && s.Statistics == p.last {
		return
	}
	p.seen = true
	p.board = s.Board
	p.last = s.Statistics
	st := s.Statistics
	fmt.Fprintf(p.out, "%s %s: %d components (front %d, back %d, other %d), %d mounting holes\n",
		s.UpdatedAt.Format(time.TimeOnly), s.Board,
		st.Total, st.Front, st.Back, st.OtherLayers, st.MountingHoles)
}
