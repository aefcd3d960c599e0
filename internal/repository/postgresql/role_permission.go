package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
)

type rolePermissionRepository struct {
	db *database.DB
}

func NewRolePermissionRepository(db *database.DB) user.RolePermissionRepository {
	return &rolePermissionRepository{db: db}
}

const rolePermissionColumns = `id, role, module, action, allowed, created_at, updated_at`

func (r *rolePermissionRepository) ListByRole(ctx context.Context, role user.Role) ([]user.RolePermission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+rolePermissionColumns+` FROM role_permissions WHERE role = $1 ORDER BY module, action`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	defer rows.Close()

	return collectRolePermissions(rows)
}

func (r *rolePermissionRepository) List(ctx context.Context) ([]user.RolePermission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+rolePermissionColumns+` FROM role_permissions ORDER BY role, module, action`)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	defer rows.Close()

	return collectRolePermissions(rows)
}

func (r *rolePermissionRepository) Upsert(ctx context.Context, p user.RolePermission) (user.RolePermission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO role_permissions (role, module, action, allowed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (role, module, action) DO UPDATE SET
			allowed = EXCLUDED.allowed,
			updated_at = NOW()
		RETURNING ` + rolePermissionColumns

	var out user.RolePermission
	err := q.QueryRow(ctx, query, p.Role, p.Module, p.Action, p.Allowed).Scan(
		&out.ID, &out.Role, &out.Module, &out.Action, &out.Allowed, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return user.RolePermission{}, fmt.Errorf("failed to upsert role permission: %w", err)
	}

	return out, nil
}

func (r *rolePermissionRepository) IsAllowed(ctx context.Context, role user.Role, module user.Module, action user.Action) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var allowed bool
	err := q.QueryRow(ctx,
		`SELECT allowed FROM role_permissions WHERE role = $1 AND module = $2 AND action = $3`,
		role, module, action,
	).Scan(&allowed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Fall back to the seed defaults when no explicit row exists.
			for _, grant := range user.DefaultRolePermissions() {
				if grant.Role == role && grant.Module == module && grant.Action == action {
					return grant.Allowed, nil
				}
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return allowed, nil
}

func collectRolePermissions(rows pgx.Rows) ([]user.RolePermission, error) {
	perms := make([]user.RolePermission, 0)
	for rows.Next() {
		var p user.RolePermission
		if err := rows.Scan(&p.ID, &p.Role, &p.Module, &p.Action, &p.Allowed, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
