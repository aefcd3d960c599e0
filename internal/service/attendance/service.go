package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.WorkSessionRepository
	employee.EmployeeRepository
	leave.LeaveRepository
	clock clock.Clock
}

func NewAttendanceService(
	db *database.DB,
	sessionRepo attendance.WorkSessionRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                    db,
		WorkSessionRepository: sessionRepo,
		EmployeeRepository:    employeeRepo,
		LeaveRepository:       leaveRepo,
		clock:                 clk,
	}
}

func identityFromContext(ctx context.Context) (employeeID, organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	organizationID, ok = claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return employeeID, organizationID, nil
}

func timeToStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toSessionResponse(s attendance.WorkSession) attendance.WorkSessionResponse {
	return attendance.WorkSessionResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		Date:          s.Date.Format("2006-01-02"),
		StartTime:     s.StartTime.Format(time.RFC3339),
		EndTime:       timeToStringPtr(s.EndTime),
		IsActive:      s.IsActive,
		OnBreak:       s.BreakStart != nil && s.BreakEnd == nil,
		BreakMinutes:  s.BreakMinutes,
		WorkingHours:  s.WorkingHours,
		OvertimeHours: s.OvertimeHours,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.WorkSessionResponse, error) {
	employeeID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	now := a.clock.Now()
	session := attendance.WorkSession{
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Date:           time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:      now,
	}

	created, err := a.WorkSessionRepository.Create(ctx, session)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	return toSessionResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. An open break is closed at
// the checkout instant before hours are frozen.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.WorkSessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	session, err := a.WorkSessionRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	now := a.clock.Now()
	if session.BreakStart != nil && session.BreakEnd == nil {
		session.BreakMinutes += int(now.Sub(*session.BreakStart).Minutes())
		session.BreakEnd = &now
	}

	session.EndTime = &now
	session.IsActive = false
	session.WorkingHours, session.OvertimeHours = SessionHours(session.StartTime, now, session.BreakMinutes)

	if err := a.WorkSessionRepository.Update(ctx, session); err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	return toSessionResponse(session), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.WorkSessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	session, err := a.WorkSessionRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	if session.BreakStart != nil && session.BreakEnd == nil {
		return attendance.WorkSessionResponse{}, attendance.ErrBreakAlreadyStarted
	}

	now := a.clock.Now()
	session.BreakStart = &now
	session.BreakEnd = nil

	if err := a.WorkSessionRepository.Update(ctx, session); err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	return toSessionResponse(session), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.WorkSessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	session, err := a.WorkSessionRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	if session.BreakStart == nil || session.BreakEnd != nil {
		return attendance.WorkSessionResponse{}, attendance.ErrNoBreakInProgress
	}

	now := a.clock.Now()
	session.BreakMinutes += int(now.Sub(*session.BreakStart).Minutes())
	session.BreakEnd = &now

	if err := a.WorkSessionRepository.Update(ctx, session); err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	return toSessionResponse(session), nil
}

// GetActiveSession implements attendance.AttendanceService. Working hours are a
// live estimate; they are only frozen at checkout.
func (a *AttendanceServiceImpl) GetActiveSession(ctx context.Context) (attendance.WorkSessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	session, err := a.WorkSessionRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.WorkSessionResponse{}, err
	}

	breakMinutes := session.BreakMinutes
	if session.BreakStart != nil && session.BreakEnd == nil {
		breakMinutes += int(a.clock.Now().Sub(*session.BreakStart).Minutes())
	}
	session.WorkingHours, session.OvertimeHours = SessionHours(session.StartTime, a.clock.Now(), breakMinutes)

	return toSessionResponse(session), nil
}

// GetMyMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyMonth(ctx context.Context, month, year int) (attendance.MonthlySummaryResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	return a.monthlySummary(ctx, employeeID, month, year)
}

// GetMonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, req attendance.MonthRequest) (attendance.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	// Verifies the employee belongs to the caller's organization.
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, organizationID); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	return a.monthlySummary(ctx, req.EmployeeID, req.Month, req.Year)
}

func (a *AttendanceServiceImpl) monthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummaryResponse, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	sessions, err := a.WorkSessionRepository.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	days := GroupByDay(sessions, month, year, a.clock.Now())
	summary := Summarize(employeeID, month, year, days)

	dayResponses := make([]attendance.DayAttendanceResponse, 0, len(days))
	for _, day := range days {
		sessionResponses := make([]attendance.WorkSessionResponse, 0, len(day.Sessions))
		for _, s := range day.Sessions {
			sessionResponses = append(sessionResponses, toSessionResponse(s))
		}
		dayResponses = append(dayResponses, attendance.DayAttendanceResponse{
			Date:          day.Date.Format("2006-01-02"),
			Status:        string(day.Status),
			WorkingHours:  day.WorkingHours,
			OvertimeHours: day.OvertimeHours,
			Sessions:      sessionResponses,
		})
	}

	return attendance.MonthlySummaryResponse{
		EmployeeID:    summary.EmployeeID,
		Month:         summary.Month,
		Year:          summary.Year,
		WorkingDays:   summary.WorkingDays,
		PresentDays:   summary.PresentDays,
		AbsentDays:    summary.AbsentDays,
		HalfDays:      summary.HalfDays,
		LateDays:      summary.LateDays,
		WorkingHours:  summary.WorkingHours,
		OvertimeHours: summary.OvertimeHours,
		Days:          dayResponses,
	}, nil
}

// ListSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListSessions(ctx context.Context, filter attendance.ListSessionsFilter) (attendance.ListSessionsResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sessions, total, err := a.WorkSessionRepository.List(ctx, organizationID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	responses := make([]attendance.WorkSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, toSessionResponse(s))
	}

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sessions:   responses,
	}, nil
}

// PayrollAttendance implements attendance.AttendanceService. Working days are
// Monday through Friday of the period, capped at the reference day. Each day
// earns fractional present credit from its hours; approved leaves fill their
// share, and the remainder is absent.
func (a *AttendanceServiceImpl) PayrollAttendance(ctx context.Context, employeeID string, month, year int) (attendance.PayrollAttendance, error) {
	now := a.clock.Now()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	sessions, err := a.WorkSessionRepository.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PayrollAttendance{}, err
	}

	days := GroupByDay(sessions, month, year, now)

	var presentDays, overtimeHours float64
	for _, day := range days {
		if wd := day.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		presentDays += PresentCredit(day.WorkingHours)
		overtimeHours += day.OvertimeHours
	}

	leaveDays, err := a.LeaveRepository.ApprovedByTypeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PayrollAttendance{}, err
	}

	paidLeave := leaveDays[leave.LeaveTypePaidTimeOff] + leaveDays[leave.LeaveTypeSickLeave]
	unpaidLeave := leaveDays[leave.LeaveTypeUnpaid]

	totalWorkingDays := WorkingDaysInMonth(month, year, now)
	absent := float64(totalWorkingDays) - presentDays - paidLeave - unpaidLeave
	if absent < 0 {
		absent = 0
	}

	return attendance.PayrollAttendance{
		EmployeeID:       employeeID,
		TotalWorkingDays: totalWorkingDays,
		PresentDays:      presentDays,
		PaidLeaveDays:    paidLeave,
		UnpaidLeaveDays:  unpaidLeave,
		AbsentDays:       absent,
		OvertimeHours:    round2(overtimeHours),
	}, nil
}
