package attendance

import (
	"context"
	"time"
)

// WorkSessionRepository defines data access methods for work sessions.
// All methods are scoped by organizationID to prevent cross-organization access.
type WorkSessionRepository interface {
	// Create inserts a new active session. Returns ErrActiveSessionExists when
	// the partial unique index rejects a second active session for the employee.
	Create(ctx context.Context, session WorkSession) (WorkSession, error)

	GetByID(ctx context.Context, id string, organizationID string) (WorkSession, error)

	// GetActiveByEmployee returns the employee's open session, or ErrNoActiveSession.
	GetActiveByEmployee(ctx context.Context, employeeID string) (WorkSession, error)

	Update(ctx context.Context, session WorkSession) error

	// ListByEmployeeAndRange returns sessions for [start, end] ordered by start time.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]WorkSession, error)

	// List returns sessions with filters and pagination (admin view).
	List(ctx context.Context, organizationID string, filter ListSessionsFilter) ([]WorkSession, int64, error)
}
