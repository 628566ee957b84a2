package usecase

import (
	"context"

	"github.com/boardflow/backend/domain"
)

// EventPublisher abstracts the in-process event bus so mutation
// services stay testable without a live bus. Publishing happens only
// after the datastore write succeeded; it never fails the caller.
type EventPublisher interface {
	Publish(channel string, event domain.Event)
}

// Actor identifies who performed a mutation. The display name is
// captured alongside the stable id so activity attribution survives
// renames.
type Actor struct {
	ID   string
	Name string
}

// ActivityRecorder receives the curated subset of mutations that count
// as user-visible activity. Recording is best-effort: implementations
// must never propagate a failure back to the mutation.
type ActivityRecorder interface {
	Record(ctx context.Context, boardID string, actor Actor, action, target, taskID string)
}
