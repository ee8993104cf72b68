package infra_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studentenfutter/internal/infra"
)

func fastRetry(attempts int) infra.RetryConfig {
	return infra.RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry_EventuallySucceeds(t *testing.T) {
	calls := 0
	err := infra.WithRetry(context.Background(), fastRetry(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestWithRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(2)
	cfg.OnRetry = func(attempt int, _ time.Duration, _ error) {
		retried = append(retried, attempt)
	}

	err := infra.WithRetry(context.Background(), cfg, func() error {
		calls++
		return errors.New("still down")
	})

	if err == nil || err.Error() != "still down" {
		t.Errorf("got %v, want last error", err)
	}
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
	if len(retried) != 1 || retried[0] != 1 {
		t.Errorf("OnRetry calls: got %v, want [1]", retried)
	}
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := infra.WithRetry(ctx, infra.DialRetryConfig(nil), func() error {
		calls++
		return errors.New("down")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}
