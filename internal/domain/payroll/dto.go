package payroll

import (
	"github.com/peoplecore/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayslipsRequest struct {
	PayrunID string `json:"-"`
	Force    bool   `json:"force"`
}

type PayslipResponse struct {
	ID           string  `json:"id"`
	PayrunID     string  `json:"payrun_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`

	TotalWorkingDays int     `json:"total_working_days"`
	PresentDays      float64 `json:"present_days"`
	PaidLeaveDays    float64 `json:"paid_leave_days"`
	UnpaidLeaveDays  float64 `json:"unpaid_leave_days"`
	AbsentDays       float64 `json:"absent_days"`
	OvertimeHours    float64 `json:"overtime_hours"`

	BasicSalary          decimal.Decimal `json:"basic_salary"`
	HRA                  decimal.Decimal `json:"hra"`
	StandardAllowance    decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus     decimal.Decimal `json:"performance_bonus"`
	LeaveTravelAllowance decimal.Decimal `json:"leave_travel_allowance"`
	FixedAllowance       decimal.Decimal `json:"fixed_allowance"`
	CustomEarnings       decimal.Decimal `json:"custom_earnings"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	LOPDeduction         decimal.Decimal `json:"lop_deduction"`
	PFDeduction          decimal.Decimal `json:"pf_deduction"`
	ProfessionalTax      decimal.Decimal `json:"professional_tax"`
	CustomDeductions     decimal.Decimal `json:"custom_deductions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetSalary            decimal.Decimal `json:"net_salary"`

	Status string  `json:"status"`
	PaidAt *string `json:"paid_at,omitempty"`
}

type PayrunResponse struct {
	ID          string            `json:"id"`
	Month       int               `json:"month"`
	Year        int               `json:"year"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Payslips    []PayslipResponse `json:"payslips,omitempty"`
}

type CreateComponentRequest struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !ComponentType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be EARNING or DEDUCTION"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID       string           `json:"-"`
	Name     *string          `json:"name,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type ComponentResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	IsActive   bool            `json:"is_active"`
}
