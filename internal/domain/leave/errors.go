package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave      = errors.New("leave request overlaps an existing request")
	ErrBalanceNotFound       = errors.New("leave balance not found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
)
