package leave

import (
	"github.com/peoplecore/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID    string  `json:"employee_id,omitempty"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (r CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if !LeaveType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of PAID_TIME_OFF, SICK_LEAVE, UNPAID_LEAVE"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r RejectLeaveRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "is required"}}
	}
	return nil
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     float64 `json:"total_days"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type LeaveBalanceResponse struct {
	Type      string  `json:"type"`
	Year      int     `json:"year"`
	Allocated float64 `json:"allocated"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type LeaveFilter struct {
	EmployeeID string
	Status     string
	Type       string
	Page       int
	Limit      int
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Leaves     []LeaveResponse `json:"leaves"`
}
