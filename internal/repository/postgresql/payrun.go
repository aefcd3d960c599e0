package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrunRepository struct {
	db *database.DB
}

func NewPayrunRepository(db *database.DB) payroll.PayrunRepository {
	return &payrunRepository{db: db}
}

const payrunColumns = `
	id, month, year, start_date, end_date, status, total_amount, created_at, updated_at`

func scanPayrun(row pgx.Row) (payroll.Payrun, error) {
	var p payroll.Payrun
	err := row.Scan(
		&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate,
		&p.Status, &p.TotalAmount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrunRepository) Create(ctx context.Context, p payroll.Payrun) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payruns (month, year, start_date, end_date, status, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + payrunColumns

	created, err := scanPayrun(q.QueryRow(ctx, query,
		p.Month, p.Year, p.StartDate, p.EndDate, p.Status, p.TotalAmount,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payrun{}, payroll.ErrPayrunAlreadyExists
		}
		return payroll.Payrun{}, fmt.Errorf("failed to create payrun: %w", err)
	}

	return created, nil
}

func (r *payrunRepository) GetByID(ctx context.Context, id string) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayrun(q.QueryRow(ctx, `SELECT `+payrunColumns+` FROM payruns WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to get payrun: %w", err)
	}

	return p, nil
}

func (r *payrunRepository) GetByPeriod(ctx context.Context, month, year int) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayrun(q.QueryRow(ctx,
		`SELECT `+payrunColumns+` FROM payruns WHERE month = $1 AND year = $2`, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to get payrun by period: %w", err)
	}

	return p, nil
}

func (r *payrunRepository) List(ctx context.Context, year *int) ([]payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrunColumns + ` FROM payruns`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE year = $1`
		args = append(args, *year)
	}
	query += ` ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payruns: %w", err)
	}
	defer rows.Close()

	payruns := make([]payroll.Payrun, 0)
	for rows.Next() {
		p, err := scanPayrun(rows)
		if err != nil {
			return nil, err
		}
		payruns = append(payruns, p)
	}

	return payruns, rows.Err()
}

func (r *payrunRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrunStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payruns SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payrun status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrunNotFound
	}

	return nil
}

func (r *payrunRepository) UpdateTotalAmount(ctx context.Context, id string, total decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payruns SET total_amount = $1, updated_at = NOW() WHERE id = $2`, total, id)
	if err != nil {
		return fmt.Errorf("failed to update payrun total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrunNotFound
	}

	return nil
}
