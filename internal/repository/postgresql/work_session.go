package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type workSessionRepository struct {
	db *database.DB
}

func NewWorkSessionRepository(db *database.DB) attendance.WorkSessionRepository {
	return &workSessionRepository{db: db}
}

const workSessionColumns = `
	ws.id, ws.employee_id, ws.organization_id, ws.date, ws.start_time, ws.end_time,
	ws.is_active, ws.break_start, ws.break_end, ws.break_minutes,
	ws.working_hours, ws.overtime_hours, ws.created_at, ws.updated_at`

func scanWorkSession(row pgx.Row) (attendance.WorkSession, error) {
	var s attendance.WorkSession
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.OrganizationID, &s.Date, &s.StartTime, &s.EndTime,
		&s.IsActive, &s.BreakStart, &s.BreakEnd, &s.BreakMinutes,
		&s.WorkingHours, &s.OvertimeHours, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *workSessionRepository) Create(ctx context.Context, session attendance.WorkSession) (attendance.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_sessions (employee_id, organization_id, date, start_time, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + workSessionColumnsBare

	created, err := scanWorkSession(q.QueryRow(ctx, query,
		session.EmployeeID, session.OrganizationID, session.Date, session.StartTime,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.WorkSession{}, attendance.ErrActiveSessionExists
		}
		return attendance.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}

	return created, nil
}

// workSessionColumnsBare is the column list without the ws. alias, for
// statements that do not join employees.
const workSessionColumnsBare = `
	id, employee_id, organization_id, date, start_time, end_time,
	is_active, break_start, break_end, break_minutes,
	working_hours, overtime_hours, created_at, updated_at`

func (r *workSessionRepository) GetByID(ctx context.Context, id string, organizationID string) (attendance.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSessionColumnsBare + `
		FROM work_sessions
		WHERE id = $1 AND organization_id = $2`

	session, err := scanWorkSession(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkSession{}, attendance.ErrSessionNotFound
		}
		return attendance.WorkSession{}, fmt.Errorf("failed to get work session: %w", err)
	}

	return session, nil
}

func (r *workSessionRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (attendance.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSessionColumnsBare + `
		FROM work_sessions
		WHERE employee_id = $1 AND is_active = TRUE`

	session, err := scanWorkSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkSession{}, attendance.ErrNoActiveSession
		}
		return attendance.WorkSession{}, fmt.Errorf("failed to get active session: %w", err)
	}

	return session, nil
}

func (r *workSessionRepository) Update(ctx context.Context, session attendance.WorkSession) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_sessions
		SET end_time = $1, is_active = $2, break_start = $3, break_end = $4,
			break_minutes = $5, working_hours = $6, overtime_hours = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, query,
		session.EndTime, session.IsActive, session.BreakStart, session.BreakEnd,
		session.BreakMinutes, session.WorkingHours, session.OvertimeHours, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

func (r *workSessionRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSessionColumnsBare + `
		FROM work_sessions
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY start_time`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.WorkSession, 0)
	for rows.Next() {
		session, err := scanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

func (r *workSessionRepository) List(ctx context.Context, organizationID string, filter attendance.ListSessionsFilter) ([]attendance.WorkSession, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"ws.organization_id = $1"}
	args := []interface{}{organizationID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("ws.employee_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("ws.date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("ws.date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_sessions ws WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work sessions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM work_sessions ws
		JOIN employees e ON e.id = ws.employee_id
		WHERE %s
		ORDER BY ws.start_time DESC
		LIMIT $%d OFFSET $%d`,
		workSessionColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.WorkSession, 0)
	for rows.Next() {
		var s attendance.WorkSession
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.OrganizationID, &s.Date, &s.StartTime, &s.EndTime,
			&s.IsActive, &s.BreakStart, &s.BreakEnd, &s.BreakMinutes,
			&s.WorkingHours, &s.OvertimeHours, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}
