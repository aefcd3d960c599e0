package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/peoplecore/hrms-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	clock clock.Clock
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRepository:        leaveRepo,
		LeaveBalanceRepository: balanceRepo,
		EmployeeRepository:     employeeRepo,
		clock:                  clk,
	}
}

type identity struct {
	UserID         string
	EmployeeID     string
	OrganizationID string
}

func identityFromContext(ctx context.Context) (identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id := identity{}
	if v, ok := claims["user_id"].(string); ok {
		id.UserID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		id.EmployeeID = v
	}
	if v, ok := claims["organization_id"].(string); ok {
		id.OrganizationID = v
	}
	if id.OrganizationID == "" {
		return identity{}, fmt.Errorf("organization_id claim is missing or invalid")
	}

	return id, nil
}

func toLeaveResponse(l leave.Leave) leave.LeaveResponse {
	var approvedAt *string
	if l.ApprovedAt != nil {
		s := l.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}

	return leave.LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		EmployeeName:  l.EmployeeName,
		Type:          string(l.Type),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		AttachmentURL: l.AttachmentURL,
		Status:        string(l.Status),
		ApprovedBy:    l.ApprovedBy,
		ApprovedAt:    approvedAt,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}

// CreateLeave implements leave.LeaveService. The request is created PENDING;
// paid types are checked against the remaining balance up front so an
// obviously unfundable request fails fast, but the deduction itself happens
// at approval.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	id, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID := id.EmployeeID
	if req.EmployeeID != "" {
		employeeID = req.EmployeeID
	}
	if employeeID == "" {
		return leave.LeaveResponse{}, leave.ErrLeaveNotFound
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, id.OrganizationID); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	totalDays := leave.TotalDaysBetween(start, end)

	overlapping, err := s.LeaveRepository.CheckOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if overlapping {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	leaveType := leave.LeaveType(req.Type)
	if leaveType.Paid() {
		balance, err := s.balanceFor(ctx, employeeID, leaveType, start.Year())
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		if totalDays > balance.Remaining {
			return leave.LeaveResponse{}, leave.ErrInsufficientBalance
		}
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID:     employeeID,
		OrganizationID: id.OrganizationID,
		Type:           leaveType,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      totalDays,
		Reason:         req.Reason,
		AttachmentURL:  req.AttachmentURL,
		Status:         leave.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(created), nil
}

// balanceFor returns the balance row, seeding the default allocation when the
// employee has none for the type and year.
func (s *LeaveServiceImpl) balanceFor(ctx context.Context, employeeID string, t leave.LeaveType, year int) (leave.LeaveBalance, error) {
	balance, err := s.LeaveBalanceRepository.GetByEmployeeTypeYear(ctx, employeeID, t, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		allocated := leave.DefaultAllocation(t)
		return s.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
			EmployeeID: employeeID,
			Type:       t,
			Year:       year,
			Allocated:  allocated,
			Used:       0,
			Remaining:  allocated,
		})
	}
	return balance, err
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.LeaveRepository.GetByID(ctx, id, ident.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(l), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	return s.list(ctx, ident.OrganizationID, filter)
}

// ListMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	filter.EmployeeID = ident.EmployeeID
	return s.list(ctx, ident.OrganizationID, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, organizationID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	leaves, total, err := s.LeaveRepository.List(ctx, organizationID, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toLeaveResponse(l))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Leaves:     responses,
	}, nil
}

// ApproveLeave implements leave.LeaveService. Status change and balance
// deduction commit atomically.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.LeaveRepository.GetByID(ctx, id, ident.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if l.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clock.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if l.Type.Paid() {
			balance, err := s.balanceFor(ctx, l.EmployeeID, l.Type, l.StartDate.Year())
			if err != nil {
				return err
			}
			if err := balance.Deduct(l.TotalDays); err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.Update(ctx, balance); err != nil {
				return err
			}
		}

		l.Status = leave.LeaveStatusApproved
		l.ApprovedBy = &ident.UserID
		l.ApprovedAt = &now
		return s.LeaveRepository.Update(ctx, l)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(l), nil
}

// RejectLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeave(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.LeaveRepository.GetByID(ctx, req.ID, ident.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if l.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clock.Now()
	l.Status = leave.LeaveStatusRejected
	l.Reason = &req.Reason
	l.ApprovedBy = &ident.UserID
	l.ApprovedAt = &now

	if err := s.LeaveRepository.Update(ctx, l); err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(l), nil
}

// CancelLeave implements leave.LeaveService. Cancelling an approved leave
// restores the deducted balance in the same transaction.
func (s *LeaveServiceImpl) CancelLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.LeaveRepository.GetByID(ctx, id, ident.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if l.Status != leave.LeaveStatusPending && l.Status != leave.LeaveStatusApproved {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	wasApproved := l.Status == leave.LeaveStatusApproved
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if wasApproved && l.Type.Paid() {
			balance, err := s.balanceFor(ctx, l.EmployeeID, l.Type, l.StartDate.Year())
			if err != nil {
				return err
			}
			balance.Restore(l.TotalDays)
			if err := s.LeaveBalanceRepository.Update(ctx, balance); err != nil {
				return err
			}
		}

		l.Status = leave.LeaveStatusCancelled
		return s.LeaveRepository.Update(ctx, l)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(l), nil
}

// GetBalances implements leave.LeaveService. Missing balance rows are seeded
// with the default allocation so every leave type is always reported.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string) ([]leave.LeaveBalanceResponse, error) {
	year := s.clock.Now().Year()

	responses := make([]leave.LeaveBalanceResponse, 0, 3)
	for _, t := range []leave.LeaveType{leave.LeaveTypePaidTimeOff, leave.LeaveTypeSickLeave, leave.LeaveTypeUnpaid} {
		balance, err := s.balanceFor(ctx, employeeID, t, year)
		if err != nil {
			return nil, err
		}
		responses = append(responses, leave.LeaveBalanceResponse{
			Type:      string(balance.Type),
			Year:      balance.Year,
			Allocated: balance.Allocated,
			Used:      balance.Used,
			Remaining: balance.Remaining,
		})
	}

	return responses, nil
}

// GetMyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyBalances(ctx context.Context) ([]leave.LeaveBalanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.GetBalances(ctx, ident.EmployeeID)
}
