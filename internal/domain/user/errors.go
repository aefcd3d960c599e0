package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid role")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrRolePermissionNotFound = errors.New("role permission not found")
)
