package scheduler_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports/mocks"
	"go.trai.ch/wheelwright/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type runnerFunc func(ctx context.Context, req domain.BuildRequest) domain.ExternalResult

func (f runnerFunc) Run(ctx context.Context, req domain.BuildRequest) domain.ExternalResult {
	return f(ctx, req)
}

func requests(n int) []domain.BuildRequest {
	reqs := make([]domain.BuildRequest, n)
	for i := range reqs {
		reqs[i] = domain.BuildRequest{ID: fmt.Sprintf("req-%d", i), Interpreter: fmt.Sprintf("python3.%d", i)}
	}
	return reqs
}

func setupScheduler(t *testing.T, runner scheduler.Runner) *scheduler.Scheduler {
	t.Helper()
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	return scheduler.NewScheduler(runner, tracer)
}

func TestRun_ResultsKeepRequestOrder(t *testing.T) {
	t.Parallel()
	s := setupScheduler(t, runnerFunc(func(_ context.Context, req domain.BuildRequest) domain.ExternalResult {
		// Later requests finish first.
		if req.ID == "req-0" {
			time.Sleep(20 * time.Millisecond)
		}
		return domain.ExternalResult{Success: true, Stdout: req.Interpreter}
	}))

	results, err := s.Run(context.Background(), requests(4), 4)

	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("python3.%d", i), res.Stdout)
	}
}

func TestRun_RespectsParallelism(t *testing.T) {
	t.Parallel()
	var active, peak atomic.Int32
	s := setupScheduler(t, runnerFunc(func(_ context.Context, _ domain.BuildRequest) domain.ExternalResult {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return domain.ExternalResult{Success: true}
	}))

	_, err := s.Run(context.Background(), requests(8), 2)

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRun_FailureDoesNotCancelOthers(t *testing.T) {
	t.Parallel()
	var ran atomic.Int32
	s := setupScheduler(t, runnerFunc(func(_ context.Context, req domain.BuildRequest) domain.ExternalResult {
		ran.Add(1)
		if req.ID == "req-1" {
			return domain.ExternalResult{Stderr: "ERROR: boom\n"}
		}
		return domain.ExternalResult{Success: true}
	}))

	results, err := s.Run(context.Background(), requests(3), 1)

	require.NoError(t, err)
	assert.Equal(t, int32(3), ran.Load())
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()
	s := setupScheduler(t, runnerFunc(func(_ context.Context, _ domain.BuildRequest) domain.ExternalResult {
		t.Error("runner must not be called after cancellation")
		return domain.ExternalResult{}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := s.Run(ctx, requests(2), 0)

	require.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.False(t, res.Success)
	}
}
