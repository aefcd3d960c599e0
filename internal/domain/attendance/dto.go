package attendance

import (
	"time"

	"github.com/peoplecore/hrms-backend-go/internal/pkg/validator"
)

type WorkSessionResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time,omitempty"`
	IsActive      bool    `json:"is_active"`
	OnBreak       bool    `json:"on_break"`
	BreakMinutes  int     `json:"break_minutes"`
	WorkingHours  float64 `json:"working_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type DayAttendanceResponse struct {
	Date          string                `json:"date"`
	Status        string                `json:"status"`
	WorkingHours  float64               `json:"working_hours"`
	OvertimeHours float64               `json:"overtime_hours"`
	Sessions      []WorkSessionResponse `json:"sessions"`
}

type MonthlySummaryResponse struct {
	EmployeeID    string                  `json:"employee_id"`
	Month         int                     `json:"month"`
	Year          int                     `json:"year"`
	WorkingDays   int                     `json:"working_days"`
	PresentDays   int                     `json:"present_days"`
	AbsentDays    int                     `json:"absent_days"`
	HalfDays      int                     `json:"half_days"`
	LateDays      int                     `json:"late_days"`
	WorkingHours  float64                 `json:"working_hours"`
	OvertimeHours float64                 `json:"overtime_hours"`
	Days          []DayAttendanceResponse `json:"days"`
}

type MonthRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r MonthRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSessionsFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type ListSessionsResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Sessions   []WorkSessionResponse `json:"sessions"`
}
