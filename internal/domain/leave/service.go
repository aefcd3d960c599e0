package leave

import "context"

type LeaveService interface {
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetLeave(ctx context.Context, id string) (LeaveResponse, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	ListMyLeaves(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)

	// ApproveLeave transitions PENDING -> APPROVED and deducts the balance for
	// paid leave types inside one transaction.
	ApproveLeave(ctx context.Context, id string) (LeaveResponse, error)
	RejectLeave(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)

	// CancelLeave transitions PENDING/APPROVED -> CANCELLED, restoring the
	// balance when the leave had been approved.
	CancelLeave(ctx context.Context, id string) (LeaveResponse, error)

	// GetBalances returns the employee's balances for the current year,
	// seeding default allocations for missing leave types.
	GetBalances(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error)
	GetMyBalances(ctx context.Context) ([]LeaveBalanceResponse, error)
}
