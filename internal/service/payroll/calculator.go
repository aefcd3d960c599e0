package payroll

import (
	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// SalaryBreakdown is the computed salary for one employee and one period.
// ComponentsBalanced is false when the configured percentages exceed the wage
// and the fixed allowance had to be clamped at zero.
type SalaryBreakdown struct {
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
	ComponentsBalanced   bool
}

// ComputeSalary derives the full earning and deduction breakdown from the
// employee's salary configuration, the period's attendance, and any custom
// components. All intermediate figures are rounded to two decimal places.
//
// Basic salary is half the monthly wage. HRA, performance bonus and leave
// travel allowance are percentages of basic. The fixed allowance absorbs the
// remainder of the wage so components sum back to it; loss of pay prorates the
// gross over working days for absent and unpaid leave days.
func ComputeSalary(emp employee.Employee, att attendance.PayrollAttendance, components []payroll.SalaryComponent) SalaryBreakdown {
	wage := emp.MonthlyWage

	basic := wage.Mul(half).Round(2)
	hra := basic.Mul(emp.HRAPercentage).Div(hundred).Round(2)
	bonus := basic.Mul(emp.BonusPercentage).Div(hundred).Round(2)
	lta := basic.Mul(emp.LeaveTravelPercentage).Div(hundred).Round(2)
	standard := emp.StandardAllowance.Round(2)

	balanced := true
	fixed := wage.Sub(basic).Sub(hra).Sub(bonus).Sub(lta).Sub(standard).Round(2)
	if fixed.IsNegative() {
		fixed = decimal.Zero
		balanced = false
	}

	customEarnings := decimal.Zero
	customDeductions := decimal.Zero
	for _, c := range components {
		if !c.IsActive {
			continue
		}
		switch c.Type {
		case payroll.ComponentTypeEarning:
			customEarnings = customEarnings.Add(c.Amount)
		case payroll.ComponentTypeDeduction:
			customDeductions = customDeductions.Add(c.Amount)
		}
	}
	customEarnings = customEarnings.Round(2)
	customDeductions = customDeductions.Round(2)

	// Gross is always wage-based. When the fixed allowance is clamped the
	// predefined components no longer sum to the wage; that imbalance is
	// surfaced via ComponentsBalanced, not folded into gross.
	gross := wage.Add(customEarnings).Round(2)

	lop := decimal.Zero
	if att.TotalWorkingDays > 0 {
		unpaidDays := decimal.NewFromFloat(att.AbsentDays + att.UnpaidLeaveDays)
		perDay := gross.Div(decimal.NewFromInt(int64(att.TotalWorkingDays)))
		lop = perDay.Mul(unpaidDays).Round(2)
	}

	pf := basic.Mul(emp.PFPercentage).Div(hundred).Round(2)
	profTax := emp.ProfessionalTax.Round(2)

	totalDeductions := lop.Add(pf).Add(profTax).Add(customDeductions).Round(2)
	net := gross.Sub(totalDeductions).Round(2)

	return SalaryBreakdown{
		BasicSalary:          basic,
		HRA:                  hra,
		StandardAllowance:    standard,
		PerformanceBonus:     bonus,
		LeaveTravelAllowance: lta,
		FixedAllowance:       fixed,
		CustomEarnings:       customEarnings,
		GrossSalary:          gross,
		LOPDeduction:         lop,
		PFDeduction:          pf,
		ProfessionalTax:      profTax,
		CustomDeductions:     customDeductions,
		TotalDeductions:      totalDeductions,
		NetSalary:            net,
		ComponentsBalanced:   balanced,
	}
}
