package employee

import "context"

// EmployeeRepository defines data access methods for employee records.
// All methods are scoped by organizationID to prevent cross-organization access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, organizationID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, organizationID string, filter EmployeeFilter) ([]Employee, int64, error)
	GetActiveByOrganizationID(ctx context.Context, organizationID string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string, organizationID string) error
}
