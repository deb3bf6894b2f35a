// Package scheduler runs independent build requests as parallel workers.
package scheduler

import (
	"context"
	"runtime"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Runner executes one build request to completion.
type Runner interface {
	Run(ctx context.Context, req domain.BuildRequest) domain.ExternalResult
}

// Scheduler fans build requests out to a bounded pool of workers.
type Scheduler struct {
	runner Runner
	tracer ports.Tracer
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(runner Runner, tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		runner: runner,
		tracer: tracer,
	}
}

// Run builds every request with at most parallelism concurrent workers and
// returns the results in request order. A non-positive parallelism uses the
// number of CPUs. Requests are independent: one failing does not cancel the
// others. The returned error is only set when ctx is cancelled.
func (s *Scheduler) Run(
	ctx context.Context,
	requests []domain.BuildRequest,
	parallelism int,
) ([]domain.ExternalResult, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}
	s.tracer.EmitPlan(ctx, ids)

	results := make([]domain.ExternalResult, len(requests))

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, req := range requests {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = domain.ExternalResult{Stderr: "ERROR: build cancelled\n"}
				return nil
			}

			results[i] = s.runner.Run(ctx, req)
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}
