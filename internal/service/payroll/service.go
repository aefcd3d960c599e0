package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/peoplecore/hrms-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrunRepository
	payroll.PayslipRepository
	payroll.SalaryComponentRepository
	employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewPayrollService(
	db *database.DB,
	payrunRepo payroll.PayrunRepository,
	payslipRepo payroll.PayslipRepository,
	componentRepo payroll.SalaryComponentRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	clk clock.Clock,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                        db,
		PayrunRepository:          payrunRepo,
		PayslipRepository:         payslipRepo,
		SalaryComponentRepository: componentRepo,
		EmployeeRepository:        employeeRepo,
		attendanceService:         attendanceService,
		clock:                     clk,
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

func toPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	var paidAt *string
	if p.PaidAt != nil {
		s := p.PaidAt.Format(time.RFC3339)
		paidAt = &s
	}

	return payroll.PayslipResponse{
		ID:           p.ID,
		PayrunID:     p.PayrunID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		EmployeeCode: p.EmployeeCode,
		Month:        p.Month,
		Year:         p.Year,

		TotalWorkingDays: p.TotalWorkingDays,
		PresentDays:      p.PresentDays,
		PaidLeaveDays:    p.PaidLeaveDays,
		UnpaidLeaveDays:  p.UnpaidLeaveDays,
		AbsentDays:       p.AbsentDays,
		OvertimeHours:    p.OvertimeHours,

		BasicSalary:          p.BasicSalary,
		HRA:                  p.HRA,
		StandardAllowance:    p.StandardAllowance,
		PerformanceBonus:     p.PerformanceBonus,
		LeaveTravelAllowance: p.LeaveTravelAllowance,
		FixedAllowance:       p.FixedAllowance,
		CustomEarnings:       p.CustomEarnings,
		GrossSalary:          p.GrossSalary,
		LOPDeduction:         p.LOPDeduction,
		PFDeduction:          p.PFDeduction,
		ProfessionalTax:      p.ProfessionalTax,
		CustomDeductions:     p.CustomDeductions,
		TotalDeductions:      p.TotalDeductions,
		NetSalary:            p.NetSalary,

		Status: string(p.Status),
		PaidAt: paidAt,
	}
}

func toPayrunResponse(p payroll.Payrun) payroll.PayrunResponse {
	payslips := make([]payroll.PayslipResponse, 0, len(p.Payslips))
	for _, slip := range p.Payslips {
		payslips = append(payslips, toPayslipResponse(slip))
	}

	return payroll.PayrunResponse{
		ID:          p.ID,
		Month:       p.Month,
		Year:        p.Year,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		Status:      string(p.Status),
		TotalAmount: p.TotalAmount,
		Payslips:    payslips,
	}
}

// GetOrCreatePayrun implements payroll.PayrollService. A concurrent create for
// the same period loses the unique-constraint race and refetches the winner's
// row, so both callers observe the same payrun.
func (s *PayrollServiceImpl) GetOrCreatePayrun(ctx context.Context, req payroll.PeriodRequest) (payroll.PayrunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrunResponse{}, err
	}

	payrun, err := s.PayrunRepository.GetByPeriod(ctx, req.Month, req.Year)
	if errors.Is(err, payroll.ErrPayrunNotFound) {
		start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
		payrun, err = s.PayrunRepository.Create(ctx, payroll.Payrun{
			Month:     req.Month,
			Year:      req.Year,
			StartDate: start,
			EndDate:   start.AddDate(0, 1, -1),
			Status:    payroll.PayrunStatusProcessing,
		})
		if errors.Is(err, payroll.ErrPayrunAlreadyExists) {
			payrun, err = s.PayrunRepository.GetByPeriod(ctx, req.Month, req.Year)
		}
	}
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	return s.payrunWithPayslips(ctx, payrun)
}

// GetPayrun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrun(ctx context.Context, id string) (payroll.PayrunResponse, error) {
	payrun, err := s.PayrunRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	return s.payrunWithPayslips(ctx, payrun)
}

func (s *PayrollServiceImpl) payrunWithPayslips(ctx context.Context, payrun payroll.Payrun) (payroll.PayrunResponse, error) {
	payslips, err := s.PayslipRepository.ListByPayrun(ctx, payrun.ID)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}
	payrun.Payslips = payslips

	return toPayrunResponse(payrun), nil
}

// ListPayruns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayruns(ctx context.Context, year *int) ([]payroll.PayrunResponse, error) {
	payruns, err := s.PayrunRepository.List(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrunResponse, 0, len(payruns))
	for _, p := range payruns {
		responses = append(responses, toPayrunResponse(p))
	}

	return responses, nil
}

// GeneratePayslips implements payroll.PayrollService. Attendance and salary
// are snapshotted per active employee; existing payslips are skipped unless
// Force regenerates the ones not yet paid out.
func (s *PayrollServiceImpl) GeneratePayslips(ctx context.Context, req payroll.GeneratePayslipsRequest) (payroll.PayrunResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	payrun, err := s.PayrunRepository.GetByID(ctx, req.PayrunID)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}
	if payrun.Status == payroll.PayrunStatusCompleted {
		return payroll.PayrunResponse{}, payroll.ErrPayrunAlreadyCompleted
	}

	employees, err := s.EmployeeRepository.GetActiveByOrganizationID(ctx, organizationID)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		for _, emp := range employees {
			if err := s.generateFor(ctx, payrun, emp, req.Force); err != nil {
				return err
			}
		}

		payslips, err := s.PayslipRepository.ListByPayrun(ctx, payrun.ID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, slip := range payslips {
			if slip.Status != payroll.PayslipStatusCancelled {
				total = total.Add(slip.NetSalary)
			}
		}

		return s.PayrunRepository.UpdateTotalAmount(ctx, payrun.ID, total)
	})
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	return s.GetPayrun(ctx, payrun.ID)
}

func (s *PayrollServiceImpl) generateFor(ctx context.Context, payrun payroll.Payrun, emp employee.Employee, force bool) error {
	existing, err := s.PayslipRepository.GetByEmployeePeriod(ctx, emp.ID, payrun.Month, payrun.Year)
	switch {
	case err == nil:
		// Force regenerates anything not yet paid out.
		if !force || existing.Status == payroll.PayslipStatusPaid {
			return nil
		}
		if err := s.PayslipRepository.Delete(ctx, existing.ID); err != nil {
			return err
		}
	case !errors.Is(err, payroll.ErrPayslipNotFound):
		return err
	}

	if emp.MonthlyWage.IsZero() {
		slog.Warn("Skipping payslip for employee without salary configuration",
			"employee_id", emp.ID, "payrun_id", payrun.ID)
		return nil
	}

	att, err := s.attendanceService.PayrollAttendance(ctx, emp.ID, payrun.Month, payrun.Year)
	if err != nil {
		return fmt.Errorf("failed to aggregate attendance for employee %s: %w", emp.ID, err)
	}

	components, err := s.SalaryComponentRepository.ListByEmployee(ctx, emp.ID, true)
	if err != nil {
		return err
	}

	breakdown := ComputeSalary(emp, att, components)
	if !breakdown.ComponentsBalanced {
		slog.Warn("Salary components exceed monthly wage, fixed allowance clamped",
			"employee_id", emp.ID, "payrun_id", payrun.ID)
	}

	_, err = s.PayslipRepository.Create(ctx, payroll.Payslip{
		PayrunID:       payrun.ID,
		EmployeeID:     emp.ID,
		OrganizationID: emp.OrganizationID,
		Month:          payrun.Month,
		Year:           payrun.Year,

		TotalWorkingDays: att.TotalWorkingDays,
		PresentDays:      att.PresentDays,
		PaidLeaveDays:    att.PaidLeaveDays,
		UnpaidLeaveDays:  att.UnpaidLeaveDays,
		AbsentDays:       att.AbsentDays,
		OvertimeHours:    att.OvertimeHours,

		BasicSalary:          breakdown.BasicSalary,
		HRA:                  breakdown.HRA,
		StandardAllowance:    breakdown.StandardAllowance,
		PerformanceBonus:     breakdown.PerformanceBonus,
		LeaveTravelAllowance: breakdown.LeaveTravelAllowance,
		FixedAllowance:       breakdown.FixedAllowance,
		CustomEarnings:       breakdown.CustomEarnings,
		GrossSalary:          breakdown.GrossSalary,
		LOPDeduction:         breakdown.LOPDeduction,
		PFDeduction:          breakdown.PFDeduction,
		ProfessionalTax:      breakdown.ProfessionalTax,
		CustomDeductions:     breakdown.CustomDeductions,
		TotalDeductions:      breakdown.TotalDeductions,
		NetSalary:            breakdown.NetSalary,

		Status: payroll.PayslipStatusPending,
	})
	return err
}

// ApprovePayslip implements payroll.PayrollService. Settling the last payslip
// completes the payrun and pays out every settled payslip in one transaction.
func (s *PayrollServiceImpl) ApprovePayslip(ctx context.Context, payslipID string) (payroll.PayslipResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.PayslipRepository.GetByID(ctx, payslipID, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payrun, err := s.PayrunRepository.GetByID(ctx, payslip.PayrunID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	if err := payslip.CanApprove(payrun.Status); err != nil {
		return payroll.PayslipResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.PayslipRepository.UpdateStatus(ctx, payslip.ID, payroll.PayslipStatusProcessed); err != nil {
			return err
		}

		payslips, err := s.PayslipRepository.ListByPayrun(ctx, payrun.ID)
		if err != nil {
			return err
		}

		if !payroll.AllSettled(payslips) {
			return nil
		}

		if err := s.PayslipRepository.MarkPayrunPaid(ctx, payrun.ID, false); err != nil {
			return err
		}
		return s.PayrunRepository.UpdateStatus(ctx, payrun.ID, payroll.PayrunStatusCompleted)
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	updated, err := s.PayslipRepository.GetByID(ctx, payslipID, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(updated), nil
}

// MarkPayrunAsDone implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPayrunAsDone(ctx context.Context, payrunID string) (payroll.PayrunResponse, error) {
	payrun, err := s.PayrunRepository.GetByID(ctx, payrunID)
	if err != nil {
		return payroll.PayrunResponse{}, err
	}
	if payrun.Status == payroll.PayrunStatusCompleted {
		return payroll.PayrunResponse{}, payroll.ErrPayrunAlreadyCompleted
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.PayslipRepository.MarkPayrunPaid(ctx, payrunID, true); err != nil {
			return err
		}
		return s.PayrunRepository.UpdateStatus(ctx, payrunID, payroll.PayrunStatusCompleted)
	})
	if err != nil {
		return payroll.PayrunResponse{}, err
	}

	return s.GetPayrun(ctx, payrunID)
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.PayslipRepository.GetByID(ctx, id, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(payslip), nil
}

// ListMyPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context) ([]payroll.PayslipResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslips, err := s.PayslipRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, toPayslipResponse(p))
	}

	return responses, nil
}

func toComponentResponse(c payroll.SalaryComponent) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Name:       c.Name,
		Type:       string(c.Type),
		Amount:     c.Amount,
		IsActive:   c.IsActive,
	}
}

// CreateComponent implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, organizationID); err != nil {
		return payroll.ComponentResponse{}, err
	}

	created, err := s.SalaryComponentRepository.Create(ctx, payroll.SalaryComponent{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Type:       payroll.ComponentType(req.Type),
		Amount:     req.Amount,
		IsActive:   true,
	})
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return toComponentResponse(created), nil
}

// ListComponents implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListComponents(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.ComponentResponse, error) {
	components, err := s.SalaryComponentRepository.ListByEmployee(ctx, employeeID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, toComponentResponse(c))
	}

	return responses, nil
}

// UpdateComponent implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateComponent(ctx context.Context, req payroll.UpdateComponentRequest) (payroll.ComponentResponse, error) {
	component, err := s.SalaryComponentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return payroll.ComponentResponse{}, fmt.Errorf("amount cannot be negative")
		}
		component.Amount = *req.Amount
	}
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}

	if err := s.SalaryComponentRepository.Update(ctx, component); err != nil {
		return payroll.ComponentResponse{}, err
	}

	return toComponentResponse(component), nil
}

// DeleteComponent implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteComponent(ctx context.Context, id string) error {
	return s.SalaryComponentRepository.Delete(ctx, id)
}
