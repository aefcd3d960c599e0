package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.payrun_id, p.employee_id, p.organization_id, p.month, p.year,
	p.total_working_days, p.present_days, p.paid_leave_days, p.unpaid_leave_days,
	p.absent_days, p.overtime_hours,
	p.basic_salary, p.hra, p.standard_allowance, p.performance_bonus,
	p.leave_travel_allowance, p.fixed_allowance, p.custom_earnings, p.gross_salary,
	p.lop_deduction, p.pf_deduction, p.professional_tax, p.custom_deductions,
	p.total_deductions, p.net_salary,
	p.status, p.paid_at, p.created_at, p.updated_at`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.PayrunID, &p.EmployeeID, &p.OrganizationID, &p.Month, &p.Year,
		&p.TotalWorkingDays, &p.PresentDays, &p.PaidLeaveDays, &p.UnpaidLeaveDays,
		&p.AbsentDays, &p.OvertimeHours,
		&p.BasicSalary, &p.HRA, &p.StandardAllowance, &p.PerformanceBonus,
		&p.LeaveTravelAllowance, &p.FixedAllowance, &p.CustomEarnings, &p.GrossSalary,
		&p.LOPDeduction, &p.PFDeduction, &p.ProfessionalTax, &p.CustomDeductions,
		&p.TotalDeductions, &p.NetSalary,
		&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const payslipColumnsBare = `
	id, payrun_id, employee_id, organization_id, month, year,
	total_working_days, present_days, paid_leave_days, unpaid_leave_days,
	absent_days, overtime_hours,
	basic_salary, hra, standard_allowance, performance_bonus,
	leave_travel_allowance, fixed_allowance, custom_earnings, gross_salary,
	lop_deduction, pf_deduction, professional_tax, custom_deductions,
	total_deductions, net_salary,
	status, paid_at, created_at, updated_at`

func (r *payslipRepository) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			payrun_id, employee_id, organization_id, month, year,
			total_working_days, present_days, paid_leave_days, unpaid_leave_days,
			absent_days, overtime_hours,
			basic_salary, hra, standard_allowance, performance_bonus,
			leave_travel_allowance, fixed_allowance, custom_earnings, gross_salary,
			lop_deduction, pf_deduction, professional_tax, custom_deductions,
			total_deductions, net_salary, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING ` + payslipColumnsBare

	created, err := scanPayslip(q.QueryRow(ctx, query,
		p.PayrunID, p.EmployeeID, p.OrganizationID, p.Month, p.Year,
		p.TotalWorkingDays, p.PresentDays, p.PaidLeaveDays, p.UnpaidLeaveDays,
		p.AbsentDays, p.OvertimeHours,
		p.BasicSalary, p.HRA, p.StandardAllowance, p.PerformanceBonus,
		p.LeaveTravelAllowance, p.FixedAllowance, p.CustomEarnings, p.GrossSalary,
		p.LOPDeduction, p.PFDeduction, p.ProfessionalTax, p.CustomDeductions,
		p.TotalDeductions, p.NetSalary, p.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string, organizationID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumnsBare + `
		FROM payslips
		WHERE id = $1 AND organization_id = $2`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumnsBare + `
		FROM payslips
		WHERE employee_id = $1 AND month = $2 AND year = $3`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by period: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) ListByPayrun(ctx context.Context, payrunID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `, e.full_name, e.employee_code
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.payrun_id = $1
		ORDER BY e.full_name`

	rows, err := q.Query(ctx, query, payrunID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	payslips := make([]payroll.Payslip, 0)
	for rows.Next() {
		var p payroll.Payslip
		err := rows.Scan(
			&p.ID, &p.PayrunID, &p.EmployeeID, &p.OrganizationID, &p.Month, &p.Year,
			&p.TotalWorkingDays, &p.PresentDays, &p.PaidLeaveDays, &p.UnpaidLeaveDays,
			&p.AbsentDays, &p.OvertimeHours,
			&p.BasicSalary, &p.HRA, &p.StandardAllowance, &p.PerformanceBonus,
			&p.LeaveTravelAllowance, &p.FixedAllowance, &p.CustomEarnings, &p.GrossSalary,
			&p.LOPDeduction, &p.PFDeduction, &p.ProfessionalTax, &p.CustomDeductions,
			&p.TotalDeductions, &p.NetSalary,
			&p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumnsBare + `
		FROM payslips
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	payslips := make([]payroll.Payslip, 0)
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayslipStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payslips SET status = $1, updated_at = NOW() WHERE id = $2`
	if status == payroll.PayslipStatusPaid {
		query = `UPDATE payslips SET status = $1, paid_at = NOW(), updated_at = NOW() WHERE id = $2`
	}

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

func (r *payslipRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

func (r *payslipRepository) MarkPayrunPaid(ctx context.Context, payrunID string, includePending bool) error {
	q := GetQuerier(ctx, r.db)

	if includePending {
		_, err := q.Exec(ctx, `
			UPDATE payslips SET status = 'PROCESSED', updated_at = NOW()
			WHERE payrun_id = $1 AND status = 'PENDING'
		`, payrunID)
		if err != nil {
			return fmt.Errorf("failed to process pending payslips: %w", err)
		}
	}

	_, err := q.Exec(ctx, `
		UPDATE payslips SET status = 'PAID', paid_at = NOW(), updated_at = NOW()
		WHERE payrun_id = $1 AND status = 'PROCESSED'
	`, payrunID)
	if err != nil {
		return fmt.Errorf("failed to mark payslips paid: %w", err)
	}

	return nil
}
