package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, organization_id, employee_code, full_name, email, phone_number,
	job_title, department, hire_date, resignation_date, employment_status, avatar_url,
	monthly_wage, hra_percentage, bonus_percentage, leave_travel_percentage,
	pf_percentage, professional_tax, standard_allowance,
	created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.OrganizationID, &e.EmployeeCode, &e.FullName, &e.Email, &e.PhoneNumber,
		&e.JobTitle, &e.Department, &e.HireDate, &e.ResignationDate, &e.EmploymentStatus, &e.AvatarURL,
		&e.MonthlyWage, &e.HRAPercentage, &e.BonusPercentage, &e.LeaveTravelPercentage,
		&e.PFPercentage, &e.ProfessionalTax, &e.StandardAllowance,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, organization_id, employee_code, full_name, email, phone_number,
			job_title, department, hire_date, employment_status,
			monthly_wage, hra_percentage, bonus_percentage, leave_travel_percentage,
			pf_percentage, professional_tax, standard_allowance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.UserID, emp.OrganizationID, emp.EmployeeCode, emp.FullName, emp.Email, emp.PhoneNumber,
		emp.JobTitle, emp.Department, emp.HireDate, emp.EmploymentStatus,
		emp.MonthlyWage, emp.HRAPercentage, emp.BonusPercentage, emp.LeaveTravelPercentage,
		emp.PFPercentage, emp.ProfessionalTax, emp.StandardAllowance,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, organizationID string, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"organization_id = $1", "deleted_at IS NULL"}
	args := []interface{}{organizationID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR employee_code ILIKE $%d)", len(args), len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("employment_status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		employeeColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}

	return employees, total, rows.Err()
}

func (r *employeeRepository) GetActiveByOrganizationID(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE organization_id = $1 AND employment_status = 'active' AND deleted_at IS NULL
		ORDER BY full_name`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, phone_number = $2, job_title = $3, department = $4,
			employment_status = $5, resignation_date = $6, avatar_url = $7,
			monthly_wage = $8, hra_percentage = $9, bonus_percentage = $10,
			leave_travel_percentage = $11, pf_percentage = $12,
			professional_tax = $13, standard_allowance = $14, updated_at = NOW()
		WHERE id = $15 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		emp.FullName, emp.PhoneNumber, emp.JobTitle, emp.Department,
		emp.EmploymentStatus, emp.ResignationDate, emp.AvatarURL,
		emp.MonthlyWage, emp.HRAPercentage, emp.BonusPercentage,
		emp.LeaveTravelPercentage, emp.PFPercentage,
		emp.ProfessionalTax, emp.StandardAllowance, emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
