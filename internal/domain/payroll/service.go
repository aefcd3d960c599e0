package payroll

import "context"

type PayrollService interface {
	// GetOrCreatePayrun is idempotent per (month, year): an existing payrun is
	// returned with its payslips, otherwise one is created in PROCESSING state.
	GetOrCreatePayrun(ctx context.Context, req PeriodRequest) (PayrunResponse, error)
	GetPayrun(ctx context.Context, id string) (PayrunResponse, error)
	ListPayruns(ctx context.Context, year *int) ([]PayrunResponse, error)

	// GeneratePayslips runs attendance aggregation and salary computation for
	// every active employee and persists PENDING payslips.
	GeneratePayslips(ctx context.Context, req GeneratePayslipsRequest) (PayrunResponse, error)

	// ApprovePayslip transitions PENDING -> PROCESSED; when this settles the
	// last payslip, the payrun auto-completes and all payslips become PAID.
	ApprovePayslip(ctx context.Context, payslipID string) (PayslipResponse, error)

	// MarkPayrunAsDone forces PENDING -> PROCESSED, then all -> PAID, and
	// completes the payrun.
	MarkPayrunAsDone(ctx context.Context, payrunID string) (PayrunResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListMyPayslips(ctx context.Context) ([]PayslipResponse, error)

	// Custom salary components
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	ListComponents(ctx context.Context, employeeID string, activeOnly bool) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, req UpdateComponentRequest) (ComponentResponse, error)
	DeleteComponent(ctx context.Context, id string) error
}
