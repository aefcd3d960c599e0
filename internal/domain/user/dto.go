package user

import "github.com/peoplecore/hrms-backend-go/internal/pkg/validator"

type UserResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}

type UpdateUserRoleRequest struct {
	ID   string `json:"-"`
	Role string `json:"role"`
}

func (r UpdateUserRoleRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be one of ADMIN, HR, EMPLOYEE"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RolePermissionResponse struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Module  string `json:"module"`
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
}

type UpdateRolePermissionRequest struct {
	Role    string `json:"role"`
	Module  string `json:"module"`
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
}

func (r UpdateRolePermissionRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be one of ADMIN, HR, EMPLOYEE"})
	}
	if Role(r.Role) == RoleAdmin {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "admin permissions cannot be edited"})
	}
	if validator.IsEmpty(r.Module) {
		errs = append(errs, validator.ValidationError{Field: "module", Message: "is required"})
	}
	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
