package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteRunsSingleAttempt(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: true, BreakerMinRequests: 10})

	attempts := 0
	failure := errors.New("provider down")
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return failure
	}, nil)
	if !errors.Is(err, failure) {
		t.Fatalf("expected the attempt error surfaced as-is, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected exactly one attempt, got %d", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	failure := errors.New("provider down")
	for i := 0; i < 3; i++ {
		_ = exec.Execute(context.Background(), "op", func(context.Context) error {
			return failure
		}, nil)
	}

	called := false
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		called = true
		return nil
	}, nil)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if called {
		t.Fatalf("open circuit must short-circuit the call")
	}
}

func TestExecuteKeepsClassifiedErrorsOffTheBreaker(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	validation := errors.New("bad input")
	notProviderHealth := func(error) bool { return false }
	for i := 0; i < 10; i++ {
		err := exec.Execute(context.Background(), "op", func(context.Context) error {
			return validation
		}, notProviderHealth)
		if !errors.Is(err, validation) {
			t.Fatalf("expected validation error surfaced, got %v", err)
		}
	}

	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		return nil
	}, notProviderHealth)
	if err != nil {
		t.Fatalf("circuit must stay closed for non-health errors, got %v", err)
	}
}

func TestExecuteIsolatesBreakersPerOperation(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	failure := errors.New("provider down")
	for i := 0; i < 2; i++ {
		_ = exec.Execute(context.Background(), "asi.generate", func(context.Context) error {
			return failure
		}, nil)
	}

	err := exec.Execute(context.Background(), "serpapi.search", func(context.Context) error {
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("unrelated operation must not share the open circuit, got %v", err)
	}
}

func TestExecuteBypassesBreakerWhenDisabled(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: false})

	failure := errors.New("provider down")
	for i := 0; i < 20; i++ {
		_ = exec.Execute(context.Background(), "op", func(context.Context) error {
			return failure
		}, nil)
	}

	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("disabled breaker must pass calls through, got %v", err)
	}
}

func TestNormalizeBackfillsInvalidSettings(t *testing.T) {
	cfg := Config{BreakerEnabled: true, BreakerFailureRatio: 4.2}.normalize()
	def := DefaultConfig()
	if cfg.BreakerMinRequests != def.BreakerMinRequests {
		t.Fatalf("expected default min requests, got %d", cfg.BreakerMinRequests)
	}
	if cfg.BreakerFailureRatio != def.BreakerFailureRatio {
		t.Fatalf("expected out-of-range ratio replaced, got %v", cfg.BreakerFailureRatio)
	}
	if cfg.BreakerOpenTimeout != def.BreakerOpenTimeout {
		t.Fatalf("expected default open timeout, got %v", cfg.BreakerOpenTimeout)
	}
}
