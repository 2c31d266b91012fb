package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/astar"
	"github.com/katalvlaran/pathviz/render"
	"github.com/katalvlaran/pathviz/runner"
)

type viewFlags struct {
	logFile     string
	metricsAddr string
}

func newViewCmd(a *app) *cobra.Command {
	f := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Edit a grid and watch the search in the terminal",
		Long: `Opens an interactive terminal view of the configured grid. Click or press
space to cycle a cell through open, wall, start and target; drag to paint walls.
Enter starts a paced search, c cancels it, r clears the marks, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := f.logger(a)
			if err != nil {
				return err
			}
			defer closeLog()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("view: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("view: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()

			metrics, shutdown := serveMetrics(a.metricsAddr(f.metricsAddr), logger)
			defer shutdown()

			s := &session{
				logger: logger,
				rn:     runner.New(a.cfg.RunnerConfig(), runner.WithLogger(logger), runner.WithMetrics(metrics)),
			}
			g, err := a.cfg.BuildGrid()
			if err != nil {
				return err
			}
			s.r = render.NewRenderer(screen, g, render.WithOrigin(1, 1), render.WithHelp(render.HelpText), render.WithLogger(logger))
			s.ed = render.NewEditor(s.r)

			return s.loop(cmd.Context(), screen)
		},
	}
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs here (the terminal is busy)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// logger sends logs to --log-file, or drops them: stderr would tear the view.
func (f *viewFlags) logger(a *app) (*slog.Logger, func(), error) {
	if f.logFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	fh, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-file: %w", err)
	}

	return a.cfg.NewLogger(fh), func() { _ = fh.Close() }, nil
}

// session is the state of one interactive view.
type session struct {
	logger *slog.Logger
	rn     *runner.Runner
	r      *render.Renderer
	ed     *render.Editor

	cancel context.CancelFunc // non-nil while a run is active
}

type runResult struct {
	out runner.Outcome
	err error
}

func (s *session) loop(ctx context.Context, screen tcell.Screen) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()
	done := make(chan runResult, 1)

	s.r.SetStatus("ready")
	for {
		select {
		case <-ctx.Done():
			s.shutdown(done)
			return nil

		case res := <-done:
			s.cancel = nil
			s.ed.SetLocked(false)
			if res.err != nil && !errors.Is(res.err, context.Canceled) {
				s.r.SetStatus("run failed: %v", res.err)
			}

		case ev, ok := <-events:
			if !ok || s.handle(ctx, ev, done) {
				s.shutdown(done)
				return nil
			}
		}
	}
}

// handle reacts to one terminal event and reports whether to quit.
func (s *session) handle(ctx context.Context, ev tcell.Event, done chan<- runResult) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.r.Draw()

	case *tcell.EventMouse:
		if err := s.ed.HandleMouse(ev); err != nil {
			s.r.SetStatus("%v", err)
		}

	case *tcell.EventKey:
		action, err := s.ed.HandleKey(ev)
		if err != nil {
			s.r.SetStatus("%v", err)
		}
		switch action {
		case render.ActionQuit:
			return true
		case render.ActionRun:
			s.start(ctx, done)
		case render.ActionCancel:
			s.stop()
		case render.ActionReset:
			if s.cancel == nil {
				s.r.ClearOverlays()
				s.r.SetStatus("ready")
			}
		}
	}

	return false
}

// start launches a paced run on a snapshot of the displayed grid.
func (s *session) start(ctx context.Context, done chan<- runResult) {
	if s.cancel != nil {
		return
	}
	s.r.ClearOverlays()
	e, err := astar.FromGrid(s.r.Snapshot(), astar.WithLogger(s.logger))
	if err != nil {
		s.r.SetStatus("cannot run: %v", err)
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.ed.SetLocked(true)
	go func() {
		out, err := s.rn.Run(runCtx, e, s.r)
		cancel()
		done <- runResult{out: out, err: err}
	}()
}

func (s *session) stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// shutdown cancels an active run and waits for it so nothing draws after the
// screen is finalised.
func (s *session) shutdown(done <-chan runResult) {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-done
	s.cancel = nil
}
