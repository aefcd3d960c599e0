package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/leave"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateLeave(w http.ResponseWriter, r *http.Request)
	GetLeave(w http.ResponseWriter, r *http.Request)
	ListLeaves(w http.ResponseWriter, r *http.Request)
	ListMyLeaves(w http.ResponseWriter, r *http.Request)
	ApproveLeave(w http.ResponseWriter, r *http.Request)
	RejectLeave(w http.ResponseWriter, r *http.Request)
	CancelLeave(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateLeave implements LeaveHandler
func (h *leaveHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.CreateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// GetLeave implements LeaveHandler
func (h *leaveHandlerImpl) GetLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := h.leaveService.GetLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func leaveFilterFromQuery(r *http.Request) leave.LeaveFilter {
	filter := leave.LeaveFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
		Type:       r.URL.Query().Get("type"),
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
	return filter
}

// ListLeaves implements LeaveHandler
func (h *leaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	results, err := h.leaveService.ListLeaves(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListMyLeaves implements LeaveHandler
func (h *leaveHandlerImpl) ListMyLeaves(w http.ResponseWriter, r *http.Request) {
	results, err := h.leaveService.ListMyLeaves(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ApproveLeave implements LeaveHandler
func (h *leaveHandlerImpl) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := h.leaveService.ApproveLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved successfully", result)
}

// RejectLeave implements LeaveHandler
func (h *leaveHandlerImpl) RejectLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.RejectLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected", result)
}

// CancelLeave implements LeaveHandler
func (h *leaveHandlerImpl) CancelLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := h.leaveService.CancelLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave cancelled successfully", result)
}

// GetBalances implements LeaveHandler
func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	results, err := h.leaveService.GetBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetMyBalances implements LeaveHandler
func (h *leaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	results, err := h.leaveService.GetMyBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
