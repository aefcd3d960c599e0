package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	UserID           *string
	OrganizationID   string
	EmployeeCode     string
	FullName         string
	Email            string
	PhoneNumber      *string
	JobTitle         string
	Department       *string
	HireDate         time.Time
	ResignationDate  *time.Time
	EmploymentStatus EmploymentStatus
	AvatarURL        *string

	// Salary configuration used by payslip generation.
	MonthlyWage           decimal.Decimal
	HRAPercentage         decimal.Decimal
	BonusPercentage       decimal.Decimal
	LeaveTravelPercentage decimal.Decimal
	PFPercentage          decimal.Decimal
	ProfessionalTax       decimal.Decimal
	StandardAllowance     decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusResigned, EmploymentStatusTerminated:
		return true
	}
	return false
}
