package application

import (
	"context"

	"studentenfutter/internal/domain"
)

// InvocationRecorder receives a summary of every handled request. Recording
// is best effort and never changes the response.
type InvocationRecorder interface {
	Record(ctx context.Context, inv domain.Invocation) error
}

type NoopRecorder struct{}

func (n *NoopRecorder) Record(_ context.Context, _ domain.Invocation) error {
	return nil
}

// MultiRecorder fans an invocation out to several recorders and returns the
// first error after trying all of them.
type MultiRecorder []InvocationRecorder

func (m MultiRecorder) Record(ctx context.Context, inv domain.Invocation) error {
	var first error
	for _, r := range m {
		if err := r.Record(ctx, inv); err != nil && first == nil {
			first = err
		}
	}
	return first
}
