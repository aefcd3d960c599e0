package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.organization_id, l.type, l.start_date, l.end_date,
	l.total_days, l.reason, l.attachment_url, l.status, l.approved_by, l.approved_at,
	l.created_at, l.updated_at`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.OrganizationID, &l.Type, &l.StartDate, &l.EndDate,
		&l.TotalDays, &l.Reason, &l.AttachmentURL, &l.Status, &l.ApprovedBy, &l.ApprovedAt,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

const leaveColumnsBare = `
	id, employee_id, organization_id, type, start_date, end_date,
	total_days, reason, attachment_url, status, approved_by, approved_at,
	created_at, updated_at`

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (employee_id, organization_id, type, start_date, end_date, total_days, reason, attachment_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveColumnsBare

	created, err := scanLeave(q.QueryRow(ctx, query,
		l.EmployeeID, l.OrganizationID, l.Type, l.StartDate, l.EndDate,
		l.TotalDays, l.Reason, l.AttachmentURL, l.Status,
	))
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return created, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string, organizationID string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumnsBare + `
		FROM leaves
		WHERE id = $1 AND organization_id = $2`

	l, err := scanLeave(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return l, nil
}

func (r *leaveRepository) List(ctx context.Context, organizationID string, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"l.organization_id = $1"}
	args := []interface{}{organizationID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("l.type = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leaves l WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d`,
		leaveColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		var l leave.Leave
		err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.OrganizationID, &l.Type, &l.StartDate, &l.EndDate,
			&l.TotalDays, &l.Reason, &l.AttachmentURL, &l.Status, &l.ApprovedBy, &l.ApprovedAt,
			&l.CreatedAt, &l.UpdatedAt,
			&l.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		leaves = append(leaves, l)
	}

	return leaves, total, rows.Err()
}

func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, approved_by = $2, approved_at = $3, reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, l.Status, l.ApprovedBy, l.ApprovedAt, l.Reason, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

func (r *leaveRepository) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leaves
			WHERE employee_id = $1
				AND status IN ('PENDING', 'APPROVED')
				AND start_date <= $3
				AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}

	return exists, nil
}

func (r *leaveRepository) ApprovedByTypeAndRange(ctx context.Context, employeeID string, start, end time.Time) (map[leave.LeaveType]float64, error) {
	q := GetQuerier(ctx, r.db)

	// total_days of a leave only partially inside the range is prorated by the
	// overlapping day count.
	query := `
		SELECT type,
			SUM(LEAST(end_date, $3::date) - GREATEST(start_date, $2::date) + 1)
		FROM leaves
		WHERE employee_id = $1
			AND status = 'APPROVED'
			AND start_date <= $3
			AND end_date >= $2
		GROUP BY type
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved leaves: %w", err)
	}
	defer rows.Close()

	result := make(map[leave.LeaveType]float64)
	for rows.Next() {
		var t leave.LeaveType
		var days float64
		if err := rows.Scan(&t, &days); err != nil {
			return nil, err
		}
		result[t] = days
	}

	return result, rows.Err()
}
