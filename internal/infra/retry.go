package infra

import (
	"context"
	"errors"
	"time"
)

// RetryConfig controls WithRetry's exponential backoff.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// OnRetry, if set, is called after each failed attempt that will be
	// retried, with the delay before the next one.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DialRetryConfig is used when connecting to backing services at startup.
// The menu feed itself is never retried.
func DialRetryConfig(onRetry func(attempt int, delay time.Duration, err error)) RetryConfig {
	return RetryConfig{
		MaxAttempts:  5,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		OnRetry:      onRetry,
	}
}

// WithRetry calls fn until it succeeds, attempts run out or ctx ends.
// Context errors returned by fn stop the loop immediately.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	delay := cfg.InitialDelay
	var err error

	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || attempt == cfg.MaxAttempts {
			return err
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	}
}
