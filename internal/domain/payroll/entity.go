package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrunStatus enum. CANCELLED is terminal and reserved; no documented
// transition reaches it.
type PayrunStatus string

const (
	PayrunStatusProcessing PayrunStatus = "PROCESSING"
	PayrunStatusCompleted  PayrunStatus = "COMPLETED"
	PayrunStatusCancelled  PayrunStatus = "CANCELLED"
)

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusPending   PayslipStatus = "PENDING"
	PayslipStatusProcessed PayslipStatus = "PROCESSED"
	PayslipStatusPaid      PayslipStatus = "PAID"
	PayslipStatusCancelled PayslipStatus = "CANCELLED"
)

// Payrun is one month's payroll batch. Unique per (month, year).
type Payrun struct {
	ID          string
	Month       int
	Year        int
	StartDate   time.Time
	EndDate     time.Time
	Status      PayrunStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Payslips []Payslip
}

// Payslip is one employee's frozen attendance and salary snapshot for one
// payrun. Immutable once created unless explicitly regenerated.
type Payslip struct {
	ID             string
	PayrunID       string
	EmployeeID     string
	OrganizationID string
	Month          int
	Year           int

	// Attendance snapshot
	TotalWorkingDays int
	PresentDays      float64
	PaidLeaveDays    float64
	UnpaidLeaveDays  float64
	AbsentDays       float64
	OvertimeHours    float64

	// Salary snapshot
	BasicSalary          decimal.Decimal
	HRA                  decimal.Decimal
	StandardAllowance    decimal.Decimal
	PerformanceBonus     decimal.Decimal
	LeaveTravelAllowance decimal.Decimal
	FixedAllowance       decimal.Decimal
	CustomEarnings       decimal.Decimal
	GrossSalary          decimal.Decimal
	LOPDeduction         decimal.Decimal
	PFDeduction          decimal.Decimal
	ProfessionalTax      decimal.Decimal
	CustomDeductions     decimal.Decimal
	TotalDeductions      decimal.Decimal
	NetSalary            decimal.Decimal

	Status    PayslipStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// CanApprove checks the PENDING -> PROCESSED transition for a payslip inside
// a payrun with the given status.
func (p Payslip) CanApprove(payrunStatus PayrunStatus) error {
	if payrunStatus == PayrunStatusCompleted {
		return ErrPayrunAlreadyCompleted
	}
	if p.Status != PayslipStatusPending {
		return ErrPayslipAlreadyProcessed
	}
	return nil
}

// AllSettled reports whether every payslip is PROCESSED or PAID, the condition
// that auto-completes the payrun.
func AllSettled(payslips []Payslip) bool {
	if len(payslips) == 0 {
		return false
	}
	for _, p := range payslips {
		if p.Status != PayslipStatusProcessed && p.Status != PayslipStatusPaid {
			return false
		}
	}
	return true
}

// ComponentType enum for custom salary components.
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "EARNING"
	ComponentTypeDeduction ComponentType = "DEDUCTION"
)

func (t ComponentType) Valid() bool {
	return t == ComponentTypeEarning || t == ComponentTypeDeduction
}

// SalaryComponent is a custom recurring earning or deduction for one employee.
type SalaryComponent struct {
	ID         string
	EmployeeID string
	Name       string
	Type       ComponentType
	Amount     decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
