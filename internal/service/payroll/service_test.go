package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancesvc "github.com/peoplecore/hrms-backend-go/internal/service/attendance"

	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/peoplecore/hrms-backend-go/internal/repository/postgresql"
)

var testPayrollDB *database.DB

func payrollTestInit(t *testing.T) {
	t.Helper()
	if testPayrollDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testPayrollDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

func truncatePayrollTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"payslips", "payruns", "salary_components", "work_sessions", "leaves", "employees", "organizations"}

	for _, table := range tables {
		_, err := testPayrollDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context) (employeeID, organizationID string) {
	t.Helper()

	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO organizations (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Org', NOW(), NOW())
		RETURNING id
	`).Scan(&organizationID)
	require.NoError(t, err)

	employeeRepo := postgresql.NewEmployeeRepository(testPayrollDB)
	created, err := employeeRepo.Create(ctx, employee.Employee{
		OrganizationID:        organizationID,
		EmployeeCode:          fmt.Sprintf("EMP-%d", time.Now().UnixNano()),
		FullName:              "Payroll Tester",
		Email:                 fmt.Sprintf("payroll-%d@example.com", time.Now().UnixNano()),
		JobTitle:              "Engineer",
		HireDate:              time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EmploymentStatus:      employee.EmploymentStatusActive,
		MonthlyWage:           decimal.NewFromInt(100000),
		HRAPercentage:         decimal.NewFromInt(50),
		BonusPercentage:       decimal.NewFromFloat(8.33),
		LeaveTravelPercentage: decimal.NewFromFloat(8.333),
		PFPercentage:          decimal.NewFromInt(12),
		ProfessionalTax:       decimal.NewFromInt(200),
		StandardAllowance:     decimal.NewFromInt(4167),
	})
	require.NoError(t, err)

	return created.ID, organizationID
}

func payrollAuthContext(t *testing.T, employeeID, organizationID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":         "user-1",
		"employee_id":     employeeID,
		"organization_id": organizationID,
		"role":            "ADMIN",
		"type":            "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newPayrollTestService() payroll.PayrollService {
	sessionRepo := postgresql.NewWorkSessionRepository(testPayrollDB)
	employeeRepo := postgresql.NewEmployeeRepository(testPayrollDB)
	leaveRepo := postgresql.NewLeaveRepository(testPayrollDB)
	clk := clock.New()

	return NewPayrollService(
		testPayrollDB,
		postgresql.NewPayrunRepository(testPayrollDB),
		postgresql.NewPayslipRepository(testPayrollDB),
		postgresql.NewSalaryComponentRepository(testPayrollDB),
		employeeRepo,
		attendancesvc.NewAttendanceService(testPayrollDB, sessionRepo, employeeRepo, leaveRepo, clk),
		clk,
	)
}

func seedPayrun(t *testing.T, ctx context.Context, month, year int) payroll.Payrun {
	t.Helper()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	payrun, err := postgresql.NewPayrunRepository(testPayrollDB).Create(ctx, payroll.Payrun{
		Month:     month,
		Year:      year,
		StartDate: start,
		EndDate:   start.AddDate(0, 1, -1),
		Status:    payroll.PayrunStatusProcessing,
	})
	require.NoError(t, err)
	return payrun
}

func seedPayslip(t *testing.T, ctx context.Context, payrun payroll.Payrun, employeeID, organizationID string, net int64) payroll.Payslip {
	t.Helper()
	slip, err := postgresql.NewPayslipRepository(testPayrollDB).Create(ctx, payroll.Payslip{
		PayrunID:       payrun.ID,
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Month:          payrun.Month,
		Year:           payrun.Year,
		GrossSalary:    decimal.NewFromInt(net),
		NetSalary:      decimal.NewFromInt(net),
		Status:         payroll.PayslipStatusPending,
	})
	require.NoError(t, err)
	return slip
}

func TestPayrollService_ApprovingLastPayslipCompletesPayrun(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	employeeID, organizationID := createPayrollTestEmployee(t, ctx)
	otherID, _ := createPayrollTestEmployee(t, ctx)
	svc := newPayrollTestService()
	authCtx := payrollAuthContext(t, employeeID, organizationID)

	payrun := seedPayrun(t, ctx, 1, 2026)
	first := seedPayslip(t, ctx, payrun, employeeID, organizationID, 90000)
	second := seedPayslip(t, ctx, payrun, otherID, organizationID, 80000)

	// Approving the first of two slips settles it but leaves the payrun open.
	approved, err := svc.ApprovePayslip(authCtx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayslipStatusProcessed), approved.Status)

	run, err := svc.GetPayrun(authCtx, payrun.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrunStatusProcessing), run.Status)

	// Approving the last slip completes the payrun and pays everything out.
	approved, err = svc.ApprovePayslip(authCtx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayslipStatusPaid), approved.Status)
	assert.NotNil(t, approved.PaidAt)

	run, err = svc.GetPayrun(authCtx, payrun.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrunStatusCompleted), run.Status)
	for _, slip := range run.Payslips {
		assert.Equal(t, string(payroll.PayslipStatusPaid), slip.Status)
	}
}

func TestPayrollService_ApprovePayslipTwice(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	employeeID, organizationID := createPayrollTestEmployee(t, ctx)
	otherID, _ := createPayrollTestEmployee(t, ctx)
	svc := newPayrollTestService()
	authCtx := payrollAuthContext(t, employeeID, organizationID)

	payrun := seedPayrun(t, ctx, 2, 2026)
	first := seedPayslip(t, ctx, payrun, employeeID, organizationID, 90000)
	seedPayslip(t, ctx, payrun, otherID, organizationID, 80000)

	_, err := svc.ApprovePayslip(authCtx, first.ID)
	require.NoError(t, err)

	_, err = svc.ApprovePayslip(authCtx, first.ID)
	assert.ErrorIs(t, err, payroll.ErrPayslipAlreadyProcessed)
}

func TestPayrollService_ApprovePayslipOnCompletedPayrun(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	employeeID, organizationID := createPayrollTestEmployee(t, ctx)
	svc := newPayrollTestService()
	authCtx := payrollAuthContext(t, employeeID, organizationID)

	payrun := seedPayrun(t, ctx, 3, 2026)
	slip := seedPayslip(t, ctx, payrun, employeeID, organizationID, 90000)

	err := postgresql.NewPayrunRepository(testPayrollDB).UpdateStatus(ctx, payrun.ID, payroll.PayrunStatusCompleted)
	require.NoError(t, err)

	_, err = svc.ApprovePayslip(authCtx, slip.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrunAlreadyCompleted)
}

func TestPayrollService_GetOrCreatePayrunIdempotent(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	svc := newPayrollTestService()

	first, err := svc.GetOrCreatePayrun(ctx, payroll.PeriodRequest{Month: 4, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrunStatusProcessing), first.Status)

	second, err := svc.GetOrCreatePayrun(ctx, payroll.PeriodRequest{Month: 4, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestPayrollService_ForceRegeneratesUnpaidPayslips(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	employeeID, organizationID := createPayrollTestEmployee(t, ctx)
	svc := newPayrollTestService()
	authCtx := payrollAuthContext(t, employeeID, organizationID)

	payrun := seedPayrun(t, ctx, 5, 2026)
	payslipRepo := postgresql.NewPayslipRepository(testPayrollDB)

	run, err := svc.GeneratePayslips(authCtx, payroll.GeneratePayslipsRequest{PayrunID: payrun.ID})
	require.NoError(t, err)
	require.Len(t, run.Payslips, 1)
	original := run.Payslips[0]

	err = payslipRepo.UpdateStatus(ctx, original.ID, payroll.PayslipStatusProcessed)
	require.NoError(t, err)

	// Without Force the processed slip is left alone.
	run, err = svc.GeneratePayslips(authCtx, payroll.GeneratePayslipsRequest{PayrunID: payrun.ID})
	require.NoError(t, err)
	require.Len(t, run.Payslips, 1)
	assert.Equal(t, original.ID, run.Payslips[0].ID)

	// Force regenerates the processed slip from scratch.
	run, err = svc.GeneratePayslips(authCtx, payroll.GeneratePayslipsRequest{PayrunID: payrun.ID, Force: true})
	require.NoError(t, err)
	require.Len(t, run.Payslips, 1)
	assert.NotEqual(t, original.ID, run.Payslips[0].ID)
	assert.Equal(t, string(payroll.PayslipStatusPending), run.Payslips[0].Status)

	// A paid slip is never regenerated, even under Force.
	err = payslipRepo.UpdateStatus(ctx, run.Payslips[0].ID, payroll.PayslipStatusPaid)
	require.NoError(t, err)
	paidID := run.Payslips[0].ID

	run, err = svc.GeneratePayslips(authCtx, payroll.GeneratePayslipsRequest{PayrunID: payrun.ID, Force: true})
	require.NoError(t, err)
	require.Len(t, run.Payslips, 1)
	assert.Equal(t, paidID, run.Payslips[0].ID)
	assert.Equal(t, string(payroll.PayslipStatusPaid), run.Payslips[0].Status)
}
