package leave

import "time"

type LeaveType string

const (
	LeaveTypePaidTimeOff LeaveType = "PAID_TIME_OFF"
	LeaveTypeSickLeave   LeaveType = "SICK_LEAVE"
	LeaveTypeUnpaid      LeaveType = "UNPAID_LEAVE"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypePaidTimeOff, LeaveTypeSickLeave, LeaveTypeUnpaid:
		return true
	}
	return false
}

// Paid reports whether approving this leave type consumes a balance.
func (t LeaveType) Paid() bool {
	return t == LeaveTypePaidTimeOff || t == LeaveTypeSickLeave
}

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

// Leave is a date-range request for one employee. TotalDays is the inclusive
// day count between StartDate and EndDate.
type Leave struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	Type           LeaveType
	StartDate      time.Time
	EndDate        time.Time
	TotalDays      float64
	Reason         *string
	AttachmentURL  *string
	Status         LeaveStatus
	ApprovedBy     *string
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
}

// LeaveBalance tracks allocation per employee, leave type and calendar year.
// Invariant: Remaining = Allocated - Used, maintained on every mutation.
type LeaveBalance struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	Year       int
	Allocated  float64
	Used       float64
	Remaining  float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Deduct consumes days from the balance, keeping the invariant.
func (b *LeaveBalance) Deduct(days float64) error {
	if days > b.Remaining {
		return ErrInsufficientBalance
	}
	b.Used += days
	b.Remaining = b.Allocated - b.Used
	return nil
}

// Restore returns days to the balance, clamping Used at zero.
func (b *LeaveBalance) Restore(days float64) {
	b.Used -= days
	if b.Used < 0 {
		b.Used = 0
	}
	b.Remaining = b.Allocated - b.Used
}

// DefaultAllocation is the yearly allocation seeded when an employee has no
// balance row for a leave type.
func DefaultAllocation(t LeaveType) float64 {
	switch t {
	case LeaveTypePaidTimeOff:
		return 18
	case LeaveTypeSickLeave:
		return 12
	default:
		return 0
	}
}

// TotalDaysBetween is the inclusive calendar-day count of a leave range.
func TotalDaysBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours()/24 + 1
	if days < 0 {
		return 0
	}
	return float64(int(days))
}
