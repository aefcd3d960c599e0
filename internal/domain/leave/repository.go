package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string, organizationID string) (Leave, error)
	List(ctx context.Context, organizationID string, filter LeaveFilter) ([]Leave, int64, error)
	Update(ctx context.Context, l Leave) error

	// CheckOverlapping reports whether the employee already has a pending or
	// approved leave intersecting [start, end].
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// ApprovedByTypeAndRange sums approved total days per leave type for leaves
	// overlapping [start, end]; used by payroll attendance aggregation.
	ApprovedByTypeAndRange(ctx context.Context, employeeID string, start, end time.Time) (map[LeaveType]float64, error)
}

type LeaveBalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID string, t LeaveType, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	Create(ctx context.Context, b LeaveBalance) (LeaveBalance, error)
	Update(ctx context.Context, b LeaveBalance) error
}
