package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type salaryComponentRepository struct {
	db *database.DB
}

func NewSalaryComponentRepository(db *database.DB) payroll.SalaryComponentRepository {
	return &salaryComponentRepository{db: db}
}

const salaryComponentColumns = `
	id, employee_id, name, type, amount, is_active, created_at, updated_at`

func scanSalaryComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var c payroll.SalaryComponent
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Name, &c.Type, &c.Amount,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *salaryComponentRepository) Create(ctx context.Context, c payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (employee_id, name, type, amount, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + salaryComponentColumns

	created, err := scanSalaryComponent(q.QueryRow(ctx, query,
		c.EmployeeID, c.Name, c.Type, c.Amount, c.IsActive,
	))
	if err != nil {
		return payroll.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return created, nil
}

func (r *salaryComponentRepository) GetByID(ctx context.Context, id string) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanSalaryComponent(q.QueryRow(ctx,
		`SELECT `+salaryComponentColumns+` FROM salary_components WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to get salary component: %w", err)
	}

	return c, nil
}

func (r *salaryComponentRepository) ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryComponentColumns + ` FROM salary_components WHERE employee_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	components := make([]payroll.SalaryComponent, 0)
	for rows.Next() {
		c, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *salaryComponentRepository) Update(ctx context.Context, c payroll.SalaryComponent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_components
		SET name = $1, type = $2, amount = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, c.Name, c.Type, c.Amount, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update salary component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentNotFound
	}

	return nil
}

func (r *salaryComponentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentNotFound
	}

	return nil
}
