package attendance

import (
	"testing"
	"time"

	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func dayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC) // a Monday
}

func TestSessionHours(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		end          time.Time
		breakMinutes int
		wantWorking  float64
		wantOvertime float64
	}{
		{
			name:        "standard nine hour day",
			start:       dayAt(9, 0),
			end:         dayAt(18, 0),
			wantWorking: 9,
		},
		{
			name:         "break subtracted",
			start:        dayAt(9, 0),
			end:          dayAt(18, 0),
			breakMinutes: 60,
			wantWorking:  8,
		},
		{
			name:         "overtime beyond nine hours",
			start:        dayAt(8, 0),
			end:          dayAt(19, 30),
			wantWorking:  11.5,
			wantOvertime: 2.5,
		},
		{
			name:        "fractional hours rounded to two decimals",
			start:       dayAt(9, 0),
			end:         dayAt(13, 20),
			wantWorking: 4.33,
		},
		{
			name:         "break longer than session floors at zero",
			start:        dayAt(9, 0),
			end:          dayAt(9, 30),
			breakMinutes: 60,
			wantWorking:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			working, overtime := SessionHours(tt.start, tt.end, tt.breakMinutes)
			assert.Equal(t, tt.wantWorking, working)
			assert.Equal(t, tt.wantOvertime, overtime)
		})
	}
}

func TestDayStatusFor(t *testing.T) {
	earlyStart := dayAt(9, 0)
	lateStart := dayAt(11, 15)

	tests := []struct {
		name       string
		totalHours float64
		firstStart *time.Time
		want       attendance.DayStatus
	}{
		{"no sessions is absent", 0, nil, attendance.DayStatusAbsent},
		{"sessions netting zero hours is half day", 0, &earlyStart, attendance.DayStatusHalfDay},
		{"under four hours is half day", 3.5, &earlyStart, attendance.DayStatusHalfDay},
		{"late start after ten", 8, &lateStart, attendance.DayStatusLate},
		{"full day on time", 9, &earlyStart, attendance.DayStatusPresent},
		{"half day threshold exactly", 4, &earlyStart, attendance.DayStatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayStatusFor(tt.totalHours, tt.firstStart))
		})
	}
}

func TestPresentCredit(t *testing.T) {
	assert.Equal(t, 1.0, PresentCredit(9))
	assert.Equal(t, 1.0, PresentCredit(10.5))
	assert.Equal(t, 0.5, PresentCredit(4))
	assert.Equal(t, 0.5, PresentCredit(8.99))
	assert.Equal(t, 0.0, PresentCredit(3.99))
	assert.Equal(t, 0.0, PresentCredit(0))
}

func TestWorkingDaysInMonth(t *testing.T) {
	// March 2026 has 22 weekdays.
	endOfMonth := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 22, WorkingDaysInMonth(3, 2026, endOfMonth))

	// Mid month: only weekdays up to the 16th count.
	midMonth := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 11, WorkingDaysInMonth(3, 2026, midMonth))
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC)
	sessions := []attendance.WorkSession{
		{
			Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			WorkingHours: 5,
		},
		{
			Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime:    time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
			WorkingHours: 4.5,
			OvertimeHours: 0,
		},
	}

	days := GroupByDay(sessions, 3, 2026, now)
	assert.Len(t, days, 3)

	assert.Equal(t, attendance.DayStatusAbsent, days[0].Status)

	assert.Equal(t, 9.5, days[1].WorkingHours)
	assert.Equal(t, attendance.DayStatusPresent, days[1].Status)
	assert.Len(t, days[1].Sessions, 2)

	assert.Equal(t, attendance.DayStatusAbsent, days[2].Status)
}

func TestGroupByDayActiveSessionLiveEstimate(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	sessions := []attendance.WorkSession{
		{
			Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			BreakMinutes: 30,
			IsActive:     true,
		},
	}

	// The reference time stands in for the missing end time: 6.5h elapsed
	// minus the 30min break.
	days := GroupByDay(sessions, 3, 2026, now)
	assert.Equal(t, 6.0, days[1].WorkingHours)
	assert.Equal(t, attendance.DayStatusPresent, days[1].Status)
}

func TestGroupByDayActiveSessionUnderThreshold(t *testing.T) {
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	sessions := []attendance.WorkSession{
		{
			Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			IsActive:  true,
		},
	}

	days := GroupByDay(sessions, 3, 2026, now)
	assert.Equal(t, 2.0, days[1].WorkingHours)
	assert.Equal(t, attendance.DayStatusHalfDay, days[1].Status)
}

func TestSummarize(t *testing.T) {
	days := []attendance.DayAttendance{
		{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), WorkingHours: 9, Status: attendance.DayStatusPresent},
		{Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), WorkingHours: 3, Status: attendance.DayStatusHalfDay},
		{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), WorkingHours: 8, Status: attendance.DayStatusLate, OvertimeHours: 0},
		{Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Status: attendance.DayStatusAbsent},
		// Idle weekend day is not counted.
		{Date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), Status: attendance.DayStatusAbsent},
		// Weekend day with hours is counted.
		{Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), WorkingHours: 10, OvertimeHours: 1, Status: attendance.DayStatusPresent},
	}

	summary := Summarize("emp-1", 3, 2026, days)

	assert.Equal(t, 5, summary.WorkingDays)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.HalfDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 30.0, summary.WorkingHours)
	assert.Equal(t, 1.0, summary.OvertimeHours)
}
