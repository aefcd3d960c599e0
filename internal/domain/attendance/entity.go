package attendance

import "time"

// WorkSession is a single check-in-to-check-out interval for one employee on
// one calendar date. At most one session per employee may be active at a time,
// enforced by a partial unique index on (employee_id) WHERE is_active.
type WorkSession struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	Date           time.Time
	StartTime      time.Time
	EndTime        *time.Time
	IsActive       bool
	BreakStart     *time.Time
	BreakEnd       *time.Time
	BreakMinutes   int
	WorkingHours   float64
	OvertimeHours  float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
}

// DayStatus is the derived attendance status for one calendar day.
type DayStatus string

const (
	DayStatusPresent DayStatus = "PRESENT"
	DayStatusAbsent  DayStatus = "ABSENT"
	DayStatusHalfDay DayStatus = "HALF_DAY"
	DayStatusLate    DayStatus = "LATE"
)

// DayAttendance groups the sessions of one calendar day with derived figures.
type DayAttendance struct {
	Date          time.Time
	Sessions      []WorkSession
	WorkingHours  float64
	OvertimeHours float64
	Status        DayStatus
}

// MonthlySummary aggregates one employee's attendance over a calendar month.
type MonthlySummary struct {
	EmployeeID    string
	Month         int
	Year          int
	WorkingDays   int
	PresentDays   int
	AbsentDays    int
	HalfDays      int
	LateDays      int
	WorkingHours  float64
	OvertimeHours float64
}

// PayrollAttendance is the aggregation variant consumed by payslip generation.
// Present credit is fractional: 1.0 for a full day, 0.5 for a half day.
type PayrollAttendance struct {
	EmployeeID       string
	TotalWorkingDays int
	PresentDays      float64
	PaidLeaveDays    float64
	UnpaidLeaveDays  float64
	AbsentDays       float64
	OvertimeHours    float64
}
