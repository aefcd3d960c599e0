package payroll

import "errors"

var (
	ErrPayrunNotFound          = errors.New("payrun not found")
	ErrPayrunAlreadyExists     = errors.New("payrun already exists for this period")
	ErrPayrunAlreadyCompleted  = errors.New("payrun already completed")
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipAlreadyExists    = errors.New("payslip already exists for this period")
	ErrPayslipAlreadyProcessed = errors.New("payslip already processed, paid or cancelled")
	ErrComponentNotFound       = errors.New("salary component not found")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
)
