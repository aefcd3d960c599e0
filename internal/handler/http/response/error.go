package response

import (
	"errors"
	"net/http"

	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/domain/auth"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/domain/organization"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")
	case errors.Is(err, user.ErrRolePermissionNotFound):
		NotFound(w, "Role permission not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this organization")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrActiveSessionExists):
		Conflict(w, "An active work session already exists")
	case errors.Is(err, attendance.ErrNoActiveSession):
		NotFound(w, "No active work session found")
	case errors.Is(err, attendance.ErrBreakAlreadyStarted):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoBreakInProgress):
		Conflict(w, "No break in progress")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Work session not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrunNotFound):
		NotFound(w, "Payrun not found")
	case errors.Is(err, payroll.ErrPayrunAlreadyExists):
		Conflict(w, "Payrun already exists for this period")
	case errors.Is(err, payroll.ErrPayrunAlreadyCompleted):
		Conflict(w, "Payrun already completed")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyExists):
		Conflict(w, "Payslip already exists for this period")
	case errors.Is(err, payroll.ErrPayslipAlreadyProcessed):
		Conflict(w, "Payslip already processed")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
