package astar

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Search runs an engine to completion without pacing. ctx is checked between
// steps; on cancellation the engine is cancelled and ctx.Err() is returned
// together with the partial Result.
//
// Exhaustion yields a Result with Found == false and an error wrapping
// ErrNoPath.
func Search(ctx context.Context, g *gridgraph.Grid, start, target int, opts ...Option) (Result, error) {
	e, err := New(g, start, target, opts...)
	if err != nil {
		return Result{}, err
	}

	return Drive(ctx, e)
}

// Drive steps e until it reaches a terminal status or ctx is done.
func Drive(ctx context.Context, e *Engine) (Result, error) {
	for !e.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			_ = e.Cancel()
			return e.Result(), err
		}
		if _, err := e.Step(); err != nil {
			return e.Result(), err
		}
	}
	if e.Status() == Exhausted {
		return e.Result(), fmt.Errorf("%w: %d -> %d", ErrNoPath, e.Start(), e.Target())
	}

	return e.Result(), nil
}
