package engine

import (
	"fmt"

	"github.com/ytget/timetable-viewer/internal/model"
)

// Mutation actions
const (
	ActionDelete       = "delete"
	ActionStartSolving = "start solving"
)

// Mutation targets
const (
	EntityRoom     = "room"
	EntityTimeslot = "timeslot"
	EntityLesson   = "lesson"
)

// MutationError reports a rejected or failed user command
type MutationError struct {
	Action string
	// Entity and ID are empty for commands that target the whole timetable.
	Entity string
	ID     model.ID
	Err    error
}

func (e *MutationError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Action, e.Entity, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
