package attendance

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

	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/peoplecore/hrms-backend-go/internal/repository/postgresql"
)

var testAttendanceDB *database.DB

func attendanceTestInit(t *testing.T) {
	t.Helper()
	if testAttendanceDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAttendanceDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

func truncateAttendanceTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"work_sessions", "leaves", "employees", "organizations"}

	for _, table := range tables {
		_, err := testAttendanceDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createAttendanceTestEmployee(t *testing.T, ctx context.Context) (employeeID, organizationID string) {
	t.Helper()

	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO organizations (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Org', NOW(), NOW())
		RETURNING id
	`).Scan(&organizationID)
	require.NoError(t, err)

	employeeRepo := postgresql.NewEmployeeRepository(testAttendanceDB)
	created, err := employeeRepo.Create(ctx, employee.Employee{
		OrganizationID:   organizationID,
		EmployeeCode:     fmt.Sprintf("EMP-%d", time.Now().UnixNano()),
		FullName:         "Session Tester",
		Email:            fmt.Sprintf("session-%d@example.com", time.Now().UnixNano()),
		JobTitle:         "Engineer",
		HireDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.EmploymentStatusActive,
		MonthlyWage:      decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	return created.ID, organizationID
}

func attendanceAuthContext(t *testing.T, employeeID, organizationID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":         "user-1",
		"employee_id":     employeeID,
		"organization_id": organizationID,
		"role":            "EMPLOYEE",
		"type":            "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newAttendanceTestService() attendance.AttendanceService {
	return NewAttendanceService(
		testAttendanceDB,
		postgresql.NewWorkSessionRepository(testAttendanceDB),
		postgresql.NewEmployeeRepository(testAttendanceDB),
		postgresql.NewLeaveRepository(testAttendanceDB),
		clock.New(),
	)
}

func TestAttendanceService_StartBreakWithoutSession(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID, organizationID := createAttendanceTestEmployee(t, ctx)
	svc := newAttendanceTestService()
	authCtx := attendanceAuthContext(t, employeeID, organizationID)

	_, err := svc.StartBreak(authCtx)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestAttendanceService_BreakLifecycle(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID, organizationID := createAttendanceTestEmployee(t, ctx)
	svc := newAttendanceTestService()
	authCtx := attendanceAuthContext(t, employeeID, organizationID)

	session, err := svc.CheckIn(authCtx)
	require.NoError(t, err)
	assert.True(t, session.IsActive)

	// Ending a break that never started errors.
	_, err = svc.EndBreak(authCtx)
	assert.ErrorIs(t, err, attendance.ErrNoBreakInProgress)

	onBreak, err := svc.StartBreak(authCtx)
	require.NoError(t, err)
	assert.True(t, onBreak.OnBreak)

	// Starting a second break while one is open errors.
	_, err = svc.StartBreak(authCtx)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyStarted)

	ended, err := svc.EndBreak(authCtx)
	require.NoError(t, err)
	assert.False(t, ended.OnBreak)

	// A second check-in while a session is active errors.
	_, err = svc.CheckIn(authCtx)
	assert.ErrorIs(t, err, attendance.ErrActiveSessionExists)

	closed, err := svc.CheckOut(authCtx)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
	assert.NotNil(t, closed.EndTime)
}

func TestAttendanceService_CheckOutWithoutSession(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID, organizationID := createAttendanceTestEmployee(t, ctx)
	svc := newAttendanceTestService()
	authCtx := attendanceAuthContext(t, employeeID, organizationID)

	_, err := svc.CheckOut(authCtx)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}
