// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the store and delivery
// interfaces used throughout the application, so tests across packages can
// share one set of in-memory fakes instead of defining inline mocks.
//
// Each mock exposes function fields for per-test overrides and falls back
// to a thread-safe in-memory default implementation, following the pattern:
//
//	events := mocks.NewMockEventStore()
//	events.AppendFn = func(ctx context.Context, e *domain.LearningEvent) error {
//	    return errors.New("store down")
//	}
package mocks
