package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayrunRepository interface {
	// Create inserts a new PROCESSING payrun. Returns ErrPayrunAlreadyExists
	// when the (month, year) unique constraint rejects the insert.
	Create(ctx context.Context, p Payrun) (Payrun, error)
	GetByID(ctx context.Context, id string) (Payrun, error)
	GetByPeriod(ctx context.Context, month, year int) (Payrun, error)
	List(ctx context.Context, year *int) ([]Payrun, error)
	UpdateStatus(ctx context.Context, id string, status PayrunStatus) error
	UpdateTotalAmount(ctx context.Context, id string, total decimal.Decimal) error
}

type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string, organizationID string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Payslip, error)
	ListByPayrun(ctx context.Context, payrunID string) ([]Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	UpdateStatus(ctx context.Context, id string, status PayslipStatus) error
	Delete(ctx context.Context, id string) error

	// MarkPayrunPaid transitions payslips in bulk: PENDING -> PROCESSED when
	// includePending, then all non-cancelled -> PAID with the paid timestamp.
	MarkPayrunPaid(ctx context.Context, payrunID string, includePending bool) error
}

type SalaryComponentRepository interface {
	Create(ctx context.Context, c SalaryComponent) (SalaryComponent, error)
	GetByID(ctx context.Context, id string) (SalaryComponent, error)
	ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]SalaryComponent, error)
	Update(ctx context.Context, c SalaryComponent) error
	Delete(ctx context.Context, id string) error
}
