// Package runner hosts an astar.Engine: it calls Step repeatedly, paces the
// calls, forwards every step to an Observer and stops on a terminal status,
// context cancellation or a step budget.
//
// The engine itself never sleeps or schedules anything. Pacing lives here and
// uses a golang.org/x/time/rate limiter:
//
//   - Config.Delay, when set, is consulted before every step and wins over
//     Config.StepDelay. A non-positive value runs that step unpaced.
//   - Otherwise Config.StepDelay is the fixed interval between steps. Zero
//     disables pacing.
//
// Cancellation is cooperative: ctx is checked between steps (and while waiting
// for the limiter), after which the engine is cancelled and Run returns
// ctx.Err() with an Outcome whose Status is astar.Cancelled.
//
// Every run gets a RunID (a UUID) that tags its StepEvents, its Outcome and its
// log records. Prometheus metrics are optional; see NewMetrics.
package runner
