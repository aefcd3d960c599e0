package user

import "context"

type UserService interface {
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateUserRole(ctx context.Context, req UpdateUserRoleRequest) (UserResponse, error)
	ListPermissions(ctx context.Context, role *Role) ([]RolePermissionResponse, error)
	UpdatePermission(ctx context.Context, req UpdateRolePermissionRequest) (RolePermissionResponse, error)
}
