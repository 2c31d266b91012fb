package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/adjacency"
	"github.com/katalvlaran/pathviz/astar"
	"github.com/katalvlaran/pathviz/config"
	"github.com/katalvlaran/pathviz/dijkstra"
	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/runner"
)

// errCostMismatch means A* and the reference solver disagree.
var errCostMismatch = errors.New("verify: A* cost differs from dijkstra")

type solveFlags struct {
	size        int
	topology    string
	layoutFile  string
	start       int
	target      int
	delay       time.Duration
	verify      bool
	metricsAddr string
}

func newSolveCmd(a *app) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search a grid headlessly and print the path",
		Long: `Builds a grid from the configuration, flags or a layout file, runs A* to
completion and prints the grid with the path marked.

Layout files hold one row per line using . open, # wall, S start, T target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			return a.solve(cmd, cfg, f)
		},
	}
	f.register(cmd)

	return cmd
}

func (f *solveFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.size, "size", 0, "cells per row of a blank grid")
	fl.StringVar(&f.topology, "topology", "", "adjacency: 4 or 8 directional")
	fl.StringVar(&f.layoutFile, "layout-file", "", "text layout to load (read-only)")
	fl.IntVar(&f.start, "start", 0, "start cell id")
	fl.IntVar(&f.target, "target", -1, "target cell id, -1 for the last cell")
	fl.DurationVar(&f.delay, "delay", 0, "pause between steps, overriding run.step_delay")
	fl.BoolVar(&f.verify, "verify", false, "cross-check the cost against dijkstra")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

// apply layers changed flags over the loaded configuration.
func (f *solveFlags) apply(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	fl := cmd.Flags()
	if fl.Changed("size") {
		cfg.Grid.Size = f.size
		cfg.Grid.Layout = nil
	}
	if fl.Changed("topology") {
		t, err := adjacency.ParseTopology(f.topology)
		if err != nil {
			return cfg, fmt.Errorf("--topology: %w", err)
		}
		cfg.Grid.Topology = t
	}
	if f.layoutFile != "" {
		rows, err := readLayout(f.layoutFile)
		if err != nil {
			return cfg, err
		}
		cfg.Grid.Layout = rows
	}
	if fl.Changed("start") {
		cfg.Grid.Start = f.start
	}
	if fl.Changed("target") {
		cfg.Grid.Target = f.target
	}
	if fl.Changed("delay") {
		cfg.Run.StepDelay = f.delay
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// readLayout loads non-empty, right-trimmed lines from path.
func readLayout(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	defer fh.Close()

	return scanLayout(fh)
}

func scanLayout(r io.Reader) ([]string, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	return rows, nil
}

func (a *app) solve(cmd *cobra.Command, cfg config.Config, f *solveFlags) error {
	g, err := cfg.BuildGrid()
	if err != nil {
		return err
	}
	e, err := astar.FromGrid(g.Clone(), astar.WithLogger(a.logger))
	if err != nil {
		return err
	}

	metrics, shutdown := serveMetrics(a.metricsAddr(f.metricsAddr), a.logger)
	defer shutdown()

	rn := runner.New(cfg.RunnerConfig(), runner.WithLogger(a.logger), runner.WithMetrics(metrics))
	out, err := rn.Run(cmd.Context(), e, nil)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, id := range out.Path {
		_ = g.Mark(id, gridgraph.OnPath) // endpoints keep their glyph
	}
	fmt.Fprintln(w, g.String())
	fmt.Fprintf(w, "status:   %s\n", out.Status)
	fmt.Fprintf(w, "steps:    %d\n", out.Steps)
	fmt.Fprintf(w, "expanded: %d\n", out.Expanded)
	if !out.Found() {
		return fmt.Errorf("%w: %d -> %d", astar.ErrNoPath, e.Start(), e.Target())
	}
	fmt.Fprintf(w, "path:     %v\n", out.Path)
	fmt.Fprintf(w, "cost:     %.6f\n", out.Cost)

	if f.verify {
		dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(e.Start()))
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		want := dist[e.Target()]
		if math.Abs(want-out.Cost) > 1e-9 {
			return fmt.Errorf("%w: %.9f vs %.9f", errCostMismatch, out.Cost, want)
		}
		fmt.Fprintln(w, "verified: cost matches dijkstra")
	}

	return nil
}
