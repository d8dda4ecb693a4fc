package client

import (
	"context"

	"github.com/ytget/timetable-viewer/internal/model"
)

// Fetcher reads the current snapshot of the scheduling problem.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// Mutator issues commands that change server-side state.
type Mutator interface {
	// StartSolving asks the server to begin an optimization pass
	StartSolving(ctx context.Context) error

	DeleteRoom(ctx context.Context, id model.ID) error
	DeleteTimeslot(ctx context.Context, id model.ID) error
	DeleteLesson(ctx context.Context, id model.ID) error
}

// API is everything the engine needs from the server.
type API interface {
	Fetcher
	Mutator
}
