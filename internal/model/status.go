package model

// SolverStatus is the server-reported state of the background solver
type SolverStatus string

const (
	// SolverStatusNotSolving means no optimization pass is running
	SolverStatusNotSolving SolverStatus = "NOT_SOLVING"

	// SolverStatusScheduled means a pass was accepted but has not started yet
	SolverStatusScheduled SolverStatus = "SOLVING_SCHEDULED"

	// SolverStatusActive means the solver is currently running
	SolverStatusActive SolverStatus = "SOLVING_ACTIVE"
)

// String returns the string representation of SolverStatus
func (s SolverStatus) String() string {
	return string(s)
}

// IsSolving returns true if the status reports any in-progress state.
// An empty status is treated as not solving.
func (s SolverStatus) IsSolving() bool {
	return s != "" && s != SolverStatusNotSolving
}
