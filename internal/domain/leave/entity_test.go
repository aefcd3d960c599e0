package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveBalanceDeduct(t *testing.T) {
	b := LeaveBalance{Allocated: 18, Used: 0, Remaining: 18}

	assert.NoError(t, b.Deduct(3))
	assert.Equal(t, 3.0, b.Used)
	assert.Equal(t, 15.0, b.Remaining)

	assert.ErrorIs(t, b.Deduct(16), ErrInsufficientBalance)
	assert.Equal(t, 3.0, b.Used)

	assert.NoError(t, b.Deduct(15))
	assert.Equal(t, 0.0, b.Remaining)
}

func TestLeaveBalanceRestore(t *testing.T) {
	b := LeaveBalance{Allocated: 12, Used: 5, Remaining: 7}

	b.Restore(3)
	assert.Equal(t, 2.0, b.Used)
	assert.Equal(t, 10.0, b.Remaining)

	// Restoring more than used clamps at zero.
	b.Restore(10)
	assert.Equal(t, 0.0, b.Used)
	assert.Equal(t, 12.0, b.Remaining)
}

func TestDefaultAllocation(t *testing.T) {
	assert.Equal(t, 18.0, DefaultAllocation(LeaveTypePaidTimeOff))
	assert.Equal(t, 12.0, DefaultAllocation(LeaveTypeSickLeave))
	assert.Equal(t, 0.0, DefaultAllocation(LeaveTypeUnpaid))
}

func TestTotalDaysBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1.0, TotalDaysBetween(day(4), day(4)))
	assert.Equal(t, 5.0, TotalDaysBetween(day(4), day(8)))
	assert.Equal(t, 0.0, TotalDaysBetween(day(8), day(4)))
}

func TestLeaveTypePaid(t *testing.T) {
	assert.True(t, LeaveTypePaidTimeOff.Paid())
	assert.True(t, LeaveTypeSickLeave.Paid())
	assert.False(t, LeaveTypeUnpaid.Paid())
}
