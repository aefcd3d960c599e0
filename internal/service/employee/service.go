package employee

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/organization"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/email"
	"github.com/peoplecore/hrms-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	organization.OrganizationRepository
	emailService email.EmailService
	fileService  file.FileService
	appBaseURL   string
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
	emailService email.EmailService,
	fileService file.FileService,
	appBaseURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
		emailService:           emailService,
		fileService:            fileService,
		appBaseURL:             appBaseURL,
	}
}

func identityFromContext(ctx context.Context) (employeeID, organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if v, ok := claims["employee_id"].(string); ok {
		employeeID = v
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return employeeID, organizationID, nil
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	var resignation *string
	if e.ResignationDate != nil {
		s := e.ResignationDate.Format("2006-01-02")
		resignation = &s
	}

	return employee.EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		JobTitle:         e.JobTitle,
		Department:       e.Department,
		HireDate:         e.HireDate.Format("2006-01-02"),
		ResignationDate:  resignation,
		EmploymentStatus: string(e.EmploymentStatus),
		AvatarURL:        e.AvatarURL,

		MonthlyWage:           e.MonthlyWage,
		HRAPercentage:         e.HRAPercentage,
		BonusPercentage:       e.BonusPercentage,
		LeaveTravelPercentage: e.LeaveTravelPercentage,
		PFPercentage:          e.PFPercentage,
		ProfessionalTax:       e.ProfessionalTax,
		StandardAllowance:     e.StandardAllowance,
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CreateEmployee implements employee.EmployeeService. The welcome email is
// dispatched on a separate goroutine; failures are logged and never fail the
// create.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		OrganizationID:   organizationID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		JobTitle:         req.JobTitle,
		Department:       req.Department,
		HireDate:         hireDate,
		EmploymentStatus: employee.EmploymentStatusActive,

		MonthlyWage:           req.MonthlyWage,
		HRAPercentage:         valueOrZero(req.HRAPercentage),
		BonusPercentage:       valueOrZero(req.BonusPercentage),
		LeaveTravelPercentage: valueOrZero(req.LeaveTravelPercentage),
		PFPercentage:          valueOrZero(req.PFPercentage),
		ProfessionalTax:       valueOrZero(req.ProfessionalTax),
		StandardAllowance:     valueOrZero(req.StandardAllowance),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	go s.sendWelcomeEmail(created, organizationID)

	return toEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) sendWelcomeEmail(emp employee.Employee, organizationID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	organizationName := "your organization"
	if org, err := s.OrganizationRepository.GetByID(ctx, organizationID); err == nil {
		organizationName = org.Name
	}

	if err := s.emailService.SendWelcome(emp.Email, emp.FullName, organizationName, s.appBaseURL+"/login"); err != nil {
		slog.Warn("Failed to send welcome email", "employee_id", emp.ID, "error", err)
		return
	}
	slog.Info("Sent welcome email", "employee_id", emp.ID)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, organizationID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Employees:  responses,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	applyEmployeeUpdate(&emp, req)

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

func applyEmployeeUpdate(emp *employee.Employee, req employee.UpdateEmployeeRequest) {
	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.JobTitle != nil {
		emp.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.Status != nil {
		emp.EmploymentStatus = employee.EmploymentStatus(*req.Status)
	}
	if req.Resignation != nil {
		d, _ := time.Parse("2006-01-02", *req.Resignation)
		emp.ResignationDate = &d
	}
	if req.MonthlyWage != nil {
		emp.MonthlyWage = *req.MonthlyWage
	}
	if req.HRAPct != nil {
		emp.HRAPercentage = *req.HRAPct
	}
	if req.BonusPct != nil {
		emp.BonusPercentage = *req.BonusPct
	}
	if req.LTAPct != nil {
		emp.LeaveTravelPercentage = *req.LTAPct
	}
	if req.PFPct != nil {
		emp.PFPercentage = *req.PFPct
	}
	if req.ProfTax != nil {
		emp.ProfessionalTax = *req.ProfTax
	}
	if req.StdAllowance != nil {
		emp.StandardAllowance = *req.StdAllowance
	}
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	_, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return err
	}

	return s.EmployeeRepository.Delete(ctx, id, organizationID)
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	employeeID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// UpdateMyProfile implements employee.EmployeeService. Only contact fields can
// be self-edited; employment and salary configuration stay as they are.
func (s *EmployeeServiceImpl) UpdateMyProfile(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	employeeID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, f io.Reader, filename string) (string, error) {
	employeeID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return "", err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, organizationID)
	if err != nil {
		return "", err
	}

	path, err := s.fileService.UploadAvatar(ctx, employeeID, f, filename)
	if err != nil {
		return "", err
	}

	url, err := s.fileService.GetFileURL(ctx, path, 0)
	if err != nil {
		return "", err
	}

	emp.AvatarURL = &url
	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return "", err
	}

	return url, nil
}
