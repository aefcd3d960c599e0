package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/organization"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, phone, email, logo_url, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Address, &org.Phone, &org.Email, &org.LogoURL,
		&org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET name = $1, address = $2, phone = $3, email = $4, logo_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, name, address, phone, email, logo_url, created_at, updated_at
	`

	var updated organization.Organization
	err := q.QueryRow(ctx, query,
		org.Name, org.Address, org.Phone, org.Email, org.LogoURL, org.ID,
	).Scan(
		&updated.ID, &updated.Name, &updated.Address, &updated.Phone, &updated.Email,
		&updated.LogoURL, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to update organization: %w", err)
	}

	return updated, nil
}
