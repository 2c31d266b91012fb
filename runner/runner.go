package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/pathviz/astar"
)

// Runner drives engines to completion. A Runner holds no per-run state and
// may be reused, but Run must not be called concurrently on the same engine.
type Runner struct {
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
}

// New returns a Runner using cfg.
func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Config returns the runner configuration.
func (r *Runner) Config() Config { return r.cfg }

// Run steps e until it reaches a terminal status. obs may be nil.
//
// Errors:
//   - ctx.Err() when ctx is done between steps; e is cancelled first.
//   - ErrStepBudget when MaxSteps steps did not finish the run; e is cancelled.
//   - any error from e.Step, wrapped.
//
// An exhausted search is a normal outcome, not an error.
func (r *Runner) Run(ctx context.Context, e *astar.Engine, obs Observer) (Outcome, error) {
	if obs == nil {
		obs = ObserverFuncs{}
	}
	runID := uuid.NewString()
	log := r.logger.With(slog.String("run_id", runID))
	begin := time.Now()

	limiter := r.newLimiter()
	log.Info("runner: run started",
		slog.Int("start", e.Start()),
		slog.Int("target", e.Target()),
		slog.Duration("step_delay", r.cfg.StepDelay),
		slog.Int("max_steps", r.cfg.MaxSteps))

	var runErr error
	for !e.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if r.cfg.MaxSteps > 0 && e.Steps() >= r.cfg.MaxSteps {
			runErr = fmt.Errorf("%w: %d steps", ErrStepBudget, r.cfg.MaxSteps)
			break
		}
		if err := r.pace(ctx, limiter); err != nil {
			runErr = err
			break
		}

		res, err := e.Step()
		if err != nil {
			runErr = fmt.Errorf("runner: step %d: %w", e.Steps(), err)
			break
		}
		r.metrics.recordStep()
		obs.OnStep(StepEvent{
			RunID:   runID,
			Index:   res.Step,
			Current: res.Current,
			Preview: res.Preview,
			Relaxed: res.Relaxed,
			Status:  res.Status,
		})
	}
	if !e.Status().Terminal() {
		_ = e.Cancel()
	}

	res := e.Result()
	out := Outcome{
		RunID:    runID,
		Status:   res.Status,
		Path:     res.Path,
		Cost:     res.Cost,
		Steps:    res.Steps,
		Expanded: res.Expanded,
		Elapsed:  time.Since(begin),
	}
	r.metrics.recordRun(out)
	obs.OnDone(out)

	attrs := []any{
		slog.String("status", out.Status.String()),
		slog.Int("steps", out.Steps),
		slog.Int("expanded", out.Expanded),
		slog.Duration("elapsed", out.Elapsed),
	}
	if out.Found() {
		attrs = append(attrs, slog.Int("path_len", len(out.Path)), slog.Float64("cost", out.Cost))
	}
	if runErr != nil {
		attrs = append(attrs, slog.String("error", runErr.Error()))
		log.Warn("runner: run stopped", attrs...)
	} else {
		log.Info("runner: run finished", attrs...)
	}

	return out, runErr
}

// newLimiter returns nil when the run is unpaced.
func (r *Runner) newLimiter() *rate.Limiter {
	switch {
	case r.cfg.Delay != nil:
		// The limit is replaced before every wait.
		return rate.NewLimiter(rate.Every(DefaultStepDelay), 1)
	case r.cfg.StepDelay > 0:
		return rate.NewLimiter(rate.Every(r.cfg.StepDelay), 1)
	default:
		return nil
	}
}

// pace blocks until the next step may run.
func (r *Runner) pace(ctx context.Context, lim *rate.Limiter) error {
	if lim == nil {
		return nil
	}
	if r.cfg.Delay != nil {
		d := r.cfg.Delay()
		if d <= 0 {
			return nil
		}
		lim.SetLimit(rate.Every(d))
	}
	if err := lim.Wait(ctx); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		// Wait fails early when the deadline would pass mid-wait.
		if _, ok := ctx.Deadline(); ok {
			return fmt.Errorf("%w: next step is due after the deadline", context.DeadlineExceeded)
		}
		return fmt.Errorf("runner: pacing: %w", err)
	}

	return nil
}
