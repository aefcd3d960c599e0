package attendance

import "context"

// AttendanceService defines business logic for work sessions and aggregation.
type AttendanceService interface {
	// CheckIn opens a new work session for the authenticated employee.
	CheckIn(ctx context.Context) (WorkSessionResponse, error)

	// CheckOut closes the active session and freezes working/overtime hours.
	CheckOut(ctx context.Context) (WorkSessionResponse, error)

	// StartBreak begins a break on the active session.
	StartBreak(ctx context.Context) (WorkSessionResponse, error)

	// EndBreak ends the open break and accumulates its duration.
	EndBreak(ctx context.Context) (WorkSessionResponse, error)

	// GetActiveSession returns the open session with a live working-hours estimate.
	GetActiveSession(ctx context.Context) (WorkSessionResponse, error)

	// GetMyMonth returns per-day attendance for the authenticated employee.
	GetMyMonth(ctx context.Context, month, year int) (MonthlySummaryResponse, error)

	// GetMonthlySummary returns per-day attendance for any employee (admin/HR).
	GetMonthlySummary(ctx context.Context, req MonthRequest) (MonthlySummaryResponse, error)

	// ListSessions lists sessions with filters (admin/HR).
	ListSessions(ctx context.Context, filter ListSessionsFilter) (ListSessionsResponse, error)

	// PayrollAttendance computes the payroll aggregation variant for one employee.
	PayrollAttendance(ctx context.Context, employeeID string, month, year int) (PayrollAttendance, error)
}
