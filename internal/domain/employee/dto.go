package employee

import (
	"github.com/peoplecore/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	JobTitle     string  `json:"job_title"`
	Department   *string `json:"department,omitempty"`
	HireDate     string  `json:"hire_date"`

	MonthlyWage           decimal.Decimal  `json:"monthly_wage"`
	HRAPercentage         *decimal.Decimal `json:"hra_percentage,omitempty"`
	BonusPercentage       *decimal.Decimal `json:"bonus_percentage,omitempty"`
	LeaveTravelPercentage *decimal.Decimal `json:"leave_travel_percentage,omitempty"`
	PFPercentage          *decimal.Decimal `json:"pf_percentage,omitempty"`
	ProfessionalTax       *decimal.Decimal `json:"professional_tax,omitempty"`
	StandardAllowance     *decimal.Decimal `json:"standard_allowance,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.MonthlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_wage", Message: "cannot be negative"})
	}
	for field, pct := range map[string]*decimal.Decimal{
		"hra_percentage":          r.HRAPercentage,
		"bonus_percentage":        r.BonusPercentage,
		"leave_travel_percentage": r.LeaveTravelPercentage,
		"pf_percentage":           r.PFPercentage,
	} {
		if pct != nil && (pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100))) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 0 and 100"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	JobTitle     *string `json:"job_title,omitempty"`
	Department   *string `json:"department,omitempty"`
	Status       *string `json:"employment_status,omitempty"`
	Resignation  *string `json:"resignation_date,omitempty"`
	MonthlyWage  *decimal.Decimal `json:"monthly_wage,omitempty"`
	HRAPct       *decimal.Decimal `json:"hra_percentage,omitempty"`
	BonusPct     *decimal.Decimal `json:"bonus_percentage,omitempty"`
	LTAPct       *decimal.Decimal `json:"leave_travel_percentage,omitempty"`
	PFPct        *decimal.Decimal `json:"pf_percentage,omitempty"`
	ProfTax      *decimal.Decimal `json:"professional_tax,omitempty"`
	StdAllowance *decimal.Decimal `json:"standard_allowance,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "cannot be empty"})
	}
	if r.Status != nil && !EmploymentStatus(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be one of active, resigned, terminated"})
	}
	if r.Resignation != nil {
		if _, ok := validator.IsValidDate(*r.Resignation); !ok {
			errs = append(errs, validator.ValidationError{Field: "resignation_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.MonthlyWage != nil && r.MonthlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_wage", Message: "cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	JobTitle         string  `json:"job_title"`
	Department       *string `json:"department,omitempty"`
	HireDate         string  `json:"hire_date"`
	ResignationDate  *string `json:"resignation_date,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	AvatarURL        *string `json:"avatar_url,omitempty"`

	MonthlyWage           decimal.Decimal `json:"monthly_wage"`
	HRAPercentage         decimal.Decimal `json:"hra_percentage"`
	BonusPercentage       decimal.Decimal `json:"bonus_percentage"`
	LeaveTravelPercentage decimal.Decimal `json:"leave_travel_percentage"`
	PFPercentage          decimal.Decimal `json:"pf_percentage"`
	ProfessionalTax       decimal.Decimal `json:"professional_tax"`
	StandardAllowance     decimal.Decimal `json:"standard_allowance"`
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
	Page       int
	Limit      int
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
