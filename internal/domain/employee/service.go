package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	// Profile operations for the authenticated user's own record.
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)
	UpdateMyProfile(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UploadAvatar(ctx context.Context, file io.Reader, filename string) (string, error)
}
