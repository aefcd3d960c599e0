package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	user.RolePermissionRepository
}

func NewUserService(userRepo user.UserRepository, permissionRepo user.RolePermissionRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository:           userRepo,
		RolePermissionRepository: permissionRepo,
	}
}

func organizationFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		EmployeeID:     u.EmployeeID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	organizationID, err := organizationFromContext(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.UserRepository.List(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}

	return responses, nil
}

// UpdateUserRole implements user.UserService.
func (s *UserServiceImpl) UpdateUserRole(ctx context.Context, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	organizationID, err := organizationFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.OrganizationID != organizationID {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	if err := s.UserRepository.UpdateRole(ctx, req.ID, user.Role(req.Role)); err != nil {
		return user.UserResponse{}, err
	}

	u.Role = user.Role(req.Role)
	return toUserResponse(u), nil
}

func toPermissionResponse(p user.RolePermission) user.RolePermissionResponse {
	return user.RolePermissionResponse{
		ID:      p.ID,
		Role:    string(p.Role),
		Module:  string(p.Module),
		Action:  string(p.Action),
		Allowed: p.Allowed,
	}
}

// ListPermissions implements user.UserService. Stored rows override the seed
// defaults; defaults fill in any triple with no row yet.
func (s *UserServiceImpl) ListPermissions(ctx context.Context, role *user.Role) ([]user.RolePermissionResponse, error) {
	var stored []user.RolePermission
	var err error
	if role != nil {
		stored, err = s.RolePermissionRepository.ListByRole(ctx, *role)
	} else {
		stored, err = s.RolePermissionRepository.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	type key struct {
		role   user.Role
		module user.Module
		action user.Action
	}
	seen := make(map[key]bool, len(stored))

	responses := make([]user.RolePermissionResponse, 0, len(stored))
	for _, p := range stored {
		seen[key{p.Role, p.Module, p.Action}] = true
		responses = append(responses, toPermissionResponse(p))
	}

	for _, p := range user.DefaultRolePermissions() {
		if role != nil && p.Role != *role {
			continue
		}
		if seen[key{p.Role, p.Module, p.Action}] {
			continue
		}
		responses = append(responses, toPermissionResponse(p))
	}

	return responses, nil
}

// UpdatePermission implements user.UserService.
func (s *UserServiceImpl) UpdatePermission(ctx context.Context, req user.UpdateRolePermissionRequest) (user.RolePermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return user.RolePermissionResponse{}, err
	}

	updated, err := s.RolePermissionRepository.Upsert(ctx, user.RolePermission{
		Role:    user.Role(req.Role),
		Module:  user.Module(req.Module),
		Action:  user.Action(req.Action),
		Allowed: req.Allowed,
	})
	if err != nil {
		return user.RolePermissionResponse{}, err
	}

	return toPermissionResponse(updated), nil
}
