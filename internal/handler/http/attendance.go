package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetActiveSession(w http.ResponseWriter, r *http.Request)
	GetMyMonth(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// StartBreak implements AttendanceHandler
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.StartBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements AttendanceHandler
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.EndBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// GetActiveSession implements AttendanceHandler
func (h *attendanceHandlerImpl) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetActiveSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// monthYearFromQuery defaults to the current month when the query omits it.
func monthYearFromQuery(r *http.Request) (int, int) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil {
			month = parsed
		}
	}
	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}
	return month, year
}

// GetMyMonth implements AttendanceHandler
func (h *attendanceHandlerImpl) GetMyMonth(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)

	req := attendance.MonthRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMyMonth(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlySummary implements AttendanceHandler
func (h *attendanceHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, year := monthYearFromQuery(r)

	req := attendance.MonthRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSessions implements AttendanceHandler
func (h *attendanceHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListSessionsFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	if from := r.URL.Query().Get("start_date"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filter.StartDate = &parsed
		} else {
			response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
			return
		}
	}
	if to := r.URL.Query().Get("end_date"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			filter.EndDate = &parsed
		} else {
			response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
			return
		}
	}

	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.attendanceService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
