package warmup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
)

type countingNormalizer struct{ calls atomic.Int64 }

func (c *countingNormalizer) Normalize(text string) string {
	c.calls.Add(1)
	return text
}

type countingScorer struct{ calls atomic.Int64 }

func (c *countingScorer) Score(a, b string) domain.Score {
	c.calls.Add(1)
	return domain.Score{}
}

func TestWarmUpExercisesRegisteredComponents(t *testing.T) {
	norm := &countingNormalizer{}
	sc := &countingScorer{}

	mgr := NewManager(logger.NewNopLogger(), WarmupConfig{Concurrency: 2, Iterations: 10})
	mgr.RegisterNormalizer(norm)
	mgr.RegisterScorer(sc)
	mgr.WarmUp(context.Background())

	if got := mgr.Iterations(); got != 20 {
		t.Errorf("expected 20 iterations, got %d", got)
	}
	if got := norm.calls.Load(); got != 20 {
		t.Errorf("expected 20 normalizer calls, got %d", got)
	}
	if got := sc.calls.Load(); got != 40 {
		t.Errorf("expected 40 scorer calls, got %d", got)
	}
}

func TestWarmUpStopsOnCancelledContext(t *testing.T) {
	norm := &countingNormalizer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := NewManager(logger.NewNopLogger(), WarmupConfig{Concurrency: 4, Iterations: 1000, Duration: time.Second})
	mgr.RegisterNormalizer(norm)
	mgr.WarmUp(ctx)

	if got := mgr.Iterations(); got != 0 {
		t.Errorf("expected no iterations after cancellation, got %d", got)
	}
}

func TestWarmUpWithoutComponentsIsNoop(t *testing.T) {
	mgr := NewManager(logger.NewNopLogger(), WarmupConfig{})
	mgr.WarmUp(context.Background())
	if got := mgr.Iterations(); got != 0 {
		t.Errorf("expected 0 iterations, got %d", got)
	}
}
