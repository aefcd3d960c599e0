package attendance

import (
	"math"
	"time"

	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
)

const (
	// standardWorkDayHours is the threshold above which hours count as overtime
	// and a day earns full present credit.
	standardWorkDayHours = 9.0

	// halfDayThresholdHours is the minimum to count as half a day.
	halfDayThresholdHours = 4.0

	// lateStartHour marks a day LATE when the first check-in is after this hour.
	lateStartHour = 10
)

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SessionHours computes working and overtime hours for a closed session. Break
// minutes are subtracted from the elapsed time; a break longer than the session
// floors working hours at zero.
func SessionHours(start, end time.Time, breakMinutes int) (working, overtime float64) {
	elapsed := end.Sub(start).Minutes() - float64(breakMinutes)
	if elapsed < 0 {
		elapsed = 0
	}
	working = round2(elapsed / 60)
	if working > standardWorkDayHours {
		overtime = round2(working - standardWorkDayHours)
	}
	return working, overtime
}

// DayStatusFor derives the attendance status of one day from its total hours
// and the first session's start time. A nil firstStart means the day had no
// sessions at all; a day with sessions but under the threshold is a half day
// even at zero net hours.
func DayStatusFor(totalHours float64, firstStart *time.Time) attendance.DayStatus {
	if firstStart == nil {
		return attendance.DayStatusAbsent
	}
	if totalHours < halfDayThresholdHours {
		return attendance.DayStatusHalfDay
	}
	if firstStart != nil && firstStart.Hour() > lateStartHour {
		return attendance.DayStatusLate
	}
	return attendance.DayStatusPresent
}

// PresentCredit converts one day's hours into fractional present days for
// payroll: a full day at or above the standard, half a day at or above the
// half-day threshold, otherwise nothing.
func PresentCredit(totalHours float64) float64 {
	switch {
	case totalHours >= standardWorkDayHours:
		return 1.0
	case totalHours >= halfDayThresholdHours:
		return 0.5
	default:
		return 0
	}
}

// WorkingDaysInMonth counts Monday-Friday days of the month, capped at the
// reference day when the month is the current one.
func WorkingDaysInMonth(month, year int, now time.Time) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if last.After(today) {
		last = today
	}

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// GroupByDay buckets sessions into per-day attendance, deriving hours and
// status for each day of the month up to the reference day. Active sessions
// contribute a live estimate with the reference time standing in for the
// missing end time.
func GroupByDay(sessions []attendance.WorkSession, month, year int, now time.Time) []attendance.DayAttendance {
	byDate := make(map[string][]attendance.WorkSession)
	for _, s := range sessions {
		key := s.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], s)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if last.After(today) {
		last = today
	}

	days := make([]attendance.DayAttendance, 0)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		daySessions := byDate[d.Format("2006-01-02")]

		var total, overtime float64
		var firstStart *time.Time
		for i, s := range daySessions {
			if s.IsActive {
				working, over := SessionHours(s.StartTime, now, s.BreakMinutes)
				total += working
				overtime += over
			} else {
				total += s.WorkingHours
				overtime += s.OvertimeHours
			}
			if i == 0 {
				start := s.StartTime
				firstStart = &start
			}
		}
		total = round2(total)
		overtime = round2(overtime)

		days = append(days, attendance.DayAttendance{
			Date:          d,
			Sessions:      daySessions,
			WorkingHours:  total,
			OvertimeHours: overtime,
			Status:        DayStatusFor(total, firstStart),
		})
	}

	return days
}

// Summarize rolls per-day attendance up into the monthly summary. Weekend days
// with no hours are skipped rather than counted absent.
func Summarize(employeeID string, month, year int, days []attendance.DayAttendance) attendance.MonthlySummary {
	summary := attendance.MonthlySummary{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	}

	for _, day := range days {
		weekend := day.Date.Weekday() == time.Saturday || day.Date.Weekday() == time.Sunday
		if weekend && day.WorkingHours == 0 {
			continue
		}

		summary.WorkingDays++
		summary.WorkingHours += day.WorkingHours
		summary.OvertimeHours += day.OvertimeHours

		switch day.Status {
		case attendance.DayStatusAbsent:
			summary.AbsentDays++
		case attendance.DayStatusHalfDay:
			summary.HalfDays++
		case attendance.DayStatusLate:
			summary.LateDays++
		default:
			summary.PresentDays++
		}
	}

	summary.WorkingHours = round2(summary.WorkingHours)
	summary.OvertimeHours = round2(summary.OvertimeHours)
	return summary
}
