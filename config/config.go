package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathviz/adjacency"
	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/runner"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxGridSize bounds grid.size so a typo cannot allocate millions of cells.
const MaxGridSize = 512

// Config is the top-level configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// GridConfig describes the initial grid.
type GridConfig struct {
	Size     int                `yaml:"size"`
	Topology adjacency.Topology `yaml:"topology"`
	Layout   []string           `yaml:"layout,omitempty"`
	Start    int                `yaml:"start"`
	Target   int                `yaml:"target"` // -1 selects the last cell
}

// RunConfig controls the stepping host.
type RunConfig struct {
	StepDelay time.Duration `yaml:"step_delay"`
	MaxSteps  int           `yaml:"max_steps"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in configuration: a blank 20×20 8-directional
// grid from the top-left to the bottom-right corner, stepped every 100ms.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Size:     20,
			Topology: adjacency.Adjacent8,
			Start:    0,
			Target:   -1,
		},
		Run: RunConfig{
			StepDelay: runner.DefaultStepDelay,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads the YAML file at path, applies PATHVIZ_* environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over Default and validates it. Environment variables are
// not consulted.
func Parse(data []byte) (Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decode(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up through
// lookup (os.LookupEnv in production):
//
//	PATHVIZ_GRID_SIZE, PATHVIZ_TOPOLOGY, PATHVIZ_STEP_DELAY,
//	PATHVIZ_MAX_STEPS, PATHVIZ_LOG_LEVEL, PATHVIZ_LOG_FORMAT,
//	PATHVIZ_METRICS_ENABLED, PATHVIZ_METRICS_ADDR
//
// Malformed values are reported rather than ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PATHVIZ_GRID_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_GRID_SIZE: %v", ErrInvalidConfig, err)
		}
		c.Grid.Size = n
	}
	if v, ok := lookup("PATHVIZ_TOPOLOGY"); ok {
		t, err := adjacency.ParseTopology(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_TOPOLOGY: %v", ErrInvalidConfig, err)
		}
		c.Grid.Topology = t
	}
	if v, ok := lookup("PATHVIZ_STEP_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_STEP_DELAY: %v", ErrInvalidConfig, err)
		}
		c.Run.StepDelay = d
	}
	if v, ok := lookup("PATHVIZ_MAX_STEPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_MAX_STEPS: %v", ErrInvalidConfig, err)
		}
		c.Run.MaxSteps = n
	}
	if v, ok := lookup("PATHVIZ_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("PATHVIZ_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup("PATHVIZ_METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_METRICS_ENABLED: %v", ErrInvalidConfig, err)
		}
		c.Metrics.Enabled = b
	}
	if v, ok := lookup("PATHVIZ_METRICS_ADDR"); ok {
		c.Metrics.Addr = v
	}

	return nil
}

// Validate checks ranges and cross-field consistency.
func (c Config) Validate() error {
	size := c.Grid.Size
	if len(c.Grid.Layout) > 0 {
		size = len(c.Grid.Layout) // the layout decides the size
	}
	if size < 1 || size > MaxGridSize {
		return fmt.Errorf("%w: grid.size must be in [1,%d], got %d", ErrInvalidConfig, MaxGridSize, size)
	}
	if !c.Grid.Topology.Valid() {
		return fmt.Errorf("%w: grid.topology %v", ErrInvalidConfig, c.Grid.Topology)
	}
	total := size * size
	if c.Grid.Start < 0 || c.Grid.Start >= total {
		return fmt.Errorf("%w: grid.start %d not in [0,%d)", ErrInvalidConfig, c.Grid.Start, total)
	}
	if c.Grid.Target < -1 || c.Grid.Target >= total {
		return fmt.Errorf("%w: grid.target %d not in [-1,%d)", ErrInvalidConfig, c.Grid.Target, total)
	}
	if len(c.Grid.Layout) == 0 {
		target := c.Grid.Target
		if target == -1 {
			target = total - 1
		}
		if target == c.Grid.Start {
			return fmt.Errorf("%w: grid.start and grid.target are both %d", ErrInvalidConfig, target)
		}
	}
	if c.Run.StepDelay < 0 {
		return fmt.Errorf("%w: run.step_delay must be >= 0", ErrInvalidConfig)
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("%w: run.max_steps must be >= 0", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics.addr is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}

// BuildGrid creates the configured grid. With a layout, its S and T glyphs
// win; grid.start and grid.target fill in whichever endpoint the layout
// lacks. A blank grid gets both endpoints from the config.
func (c Config) BuildGrid() (*gridgraph.Grid, error) {
	opt := gridgraph.WithTopology(c.Grid.Topology)

	var (
		g   *gridgraph.Grid
		err error
	)
	if len(c.Grid.Layout) > 0 {
		g, err = gridgraph.Parse(c.Grid.Layout, opt)
	} else {
		g, err = gridgraph.New(c.Grid.Size, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("config: build grid: %w", err)
	}

	if _, ok := g.StartID(); !ok {
		if err := g.SetStart(c.Grid.Start); err != nil {
			return nil, fmt.Errorf("config: grid.start: %w", err)
		}
	}
	if _, ok := g.TargetID(); !ok {
		target := c.Grid.Target
		if target == -1 {
			target = g.Len() - 1
		}
		if err := g.SetTarget(target); err != nil {
			return nil, fmt.Errorf("config: grid.target: %w", err)
		}
		if _, ok := g.StartID(); !ok {
			return nil, fmt.Errorf("%w: grid.start and grid.target are the same cell", ErrInvalidConfig)
		}
	}

	return g, nil
}

// RunnerConfig returns the stepping host settings.
func (c Config) RunnerConfig() runner.Config {
	return runner.Config{
		StepDelay: c.Run.StepDelay,
		MaxSteps:  c.Run.MaxSteps,
	}
}

// ParseLevel maps debug, info, warn and error (any case) to a slog.Level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}

	return lvl, nil
}

// NewLogger builds the process logger described by the log section. An
// unparseable level falls back to info.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(c.Log.Level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
