package payroll

import (
	"testing"

	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:                    "emp-1",
		MonthlyWage:           decimal.NewFromInt(100000),
		HRAPercentage:         decimal.NewFromInt(50),
		BonusPercentage:       decimal.NewFromFloat(8.33),
		LeaveTravelPercentage: decimal.NewFromFloat(8.333),
		PFPercentage:          decimal.NewFromInt(12),
		ProfessionalTax:       decimal.NewFromInt(200),
		StandardAllowance:     decimal.NewFromInt(4167),
	}
}

func fullAttendance() attendance.PayrollAttendance {
	return attendance.PayrollAttendance{
		TotalWorkingDays: 22,
		PresentDays:      22,
	}
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestComputeSalaryBreakdown(t *testing.T) {
	b := ComputeSalary(testEmployee(), fullAttendance(), nil)

	assertDecimalEqual(t, "50000", b.BasicSalary)
	assertDecimalEqual(t, "25000", b.HRA)
	assertDecimalEqual(t, "4167", b.StandardAllowance)
	assertDecimalEqual(t, "4165", b.PerformanceBonus)
	assertDecimalEqual(t, "4166.5", b.LeaveTravelAllowance)
	assertDecimalEqual(t, "12501.5", b.FixedAllowance)
	assertDecimalEqual(t, "100000", b.GrossSalary)
	assert.True(t, b.ComponentsBalanced)
}

func TestComputeSalaryLossOfPay(t *testing.T) {
	att := attendance.PayrollAttendance{
		TotalWorkingDays: 22,
		PresentDays:      19,
		AbsentDays:       3,
	}

	b := ComputeSalary(testEmployee(), att, nil)

	// 100000 / 22 * 3
	assertDecimalEqual(t, "13636.36", b.LOPDeduction)
}

func TestComputeSalaryUnpaidLeaveCountsAsLOP(t *testing.T) {
	att := attendance.PayrollAttendance{
		TotalWorkingDays: 22,
		PresentDays:      20,
		UnpaidLeaveDays:  1,
		AbsentDays:       1,
	}

	b := ComputeSalary(testEmployee(), att, nil)

	// Two unpaid days total.
	assertDecimalEqual(t, "9090.91", b.LOPDeduction)
}

func TestComputeSalaryDeductionsAndNet(t *testing.T) {
	b := ComputeSalary(testEmployee(), fullAttendance(), nil)

	// PF 12% of basic, professional tax flat.
	assertDecimalEqual(t, "6000", b.PFDeduction)
	assertDecimalEqual(t, "200", b.ProfessionalTax)
	assertDecimalEqual(t, "6200", b.TotalDeductions)
	assertDecimalEqual(t, "93800", b.NetSalary)
}

func TestComputeSalaryCustomComponents(t *testing.T) {
	components := []payroll.SalaryComponent{
		{Type: payroll.ComponentTypeEarning, Amount: decimal.NewFromInt(5000), IsActive: true},
		{Type: payroll.ComponentTypeDeduction, Amount: decimal.NewFromInt(1500), IsActive: true},
		{Type: payroll.ComponentTypeEarning, Amount: decimal.NewFromInt(9999), IsActive: false},
	}

	b := ComputeSalary(testEmployee(), fullAttendance(), components)

	assertDecimalEqual(t, "5000", b.CustomEarnings)
	assertDecimalEqual(t, "1500", b.CustomDeductions)
	assertDecimalEqual(t, "105000", b.GrossSalary)
	assertDecimalEqual(t, "7700", b.TotalDeductions)
	assertDecimalEqual(t, "97300", b.NetSalary)
}

func TestComputeSalaryClampsFixedAllowance(t *testing.T) {
	emp := testEmployee()
	// Percentages that overshoot the wage.
	emp.HRAPercentage = decimal.NewFromInt(100)
	emp.BonusPercentage = decimal.NewFromInt(50)

	b := ComputeSalary(emp, fullAttendance(), nil)

	assert.True(t, b.FixedAllowance.IsZero())
	assert.False(t, b.ComponentsBalanced)

	// Gross stays wage-based even though the predefined components overshoot
	// the wage; the imbalance is reported, not rolled into gross.
	assertDecimalEqual(t, "100000", b.GrossSalary)
	assertDecimalEqual(t, "93800", b.NetSalary)
}

func TestComputeSalaryClampedGrossDrivesLOP(t *testing.T) {
	emp := testEmployee()
	emp.HRAPercentage = decimal.NewFromInt(100)
	emp.BonusPercentage = decimal.NewFromInt(50)

	att := attendance.PayrollAttendance{
		TotalWorkingDays: 22,
		PresentDays:      19,
		AbsentDays:       3,
	}

	b := ComputeSalary(emp, att, nil)

	// 100000 / 22 * 3: the clamp does not inflate the LOP base.
	assertDecimalEqual(t, "13636.36", b.LOPDeduction)
}

func TestComputeSalaryZeroWorkingDays(t *testing.T) {
	b := ComputeSalary(testEmployee(), attendance.PayrollAttendance{}, nil)

	assert.True(t, b.LOPDeduction.IsZero())
}
