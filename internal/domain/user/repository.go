package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, organizationID string) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	Update(ctx context.Context, u User) error
}

type RolePermissionRepository interface {
	ListByRole(ctx context.Context, role Role) ([]RolePermission, error)
	List(ctx context.Context) ([]RolePermission, error)
	Upsert(ctx context.Context, p RolePermission) (RolePermission, error)
	IsAllowed(ctx context.Context, role Role, module Module, action Action) (bool, error)
}
