package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const leaveBalanceColumns = `
	id, employee_id, type, year, allocated, used, remaining, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.Type, &b.Year,
		&b.Allocated, &b.Used, &b.Remaining,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID string, t leave.LeaveType, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND type = $2 AND year = $3`

	balance, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, t, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

func (r *leaveBalanceRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY type`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		balance, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

func (r *leaveBalanceRepository) Create(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT keeps concurrent seeding idempotent.
	query := `
		INSERT INTO leave_balances (employee_id, type, year, allocated, used, remaining)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, type, year) DO UPDATE SET updated_at = NOW()
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		b.EmployeeID, b.Type, b.Year, b.Allocated, b.Used, b.Remaining,
	))
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return created, nil
}

func (r *leaveBalanceRepository) Update(ctx context.Context, b leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET allocated = $1, used = $2, remaining = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, b.Allocated, b.Used, b.Remaining, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
