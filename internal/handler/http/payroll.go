package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetOrCreatePayrun(w http.ResponseWriter, r *http.Request)
	GetPayrun(w http.ResponseWriter, r *http.Request)
	ListPayruns(w http.ResponseWriter, r *http.Request)
	GeneratePayslips(w http.ResponseWriter, r *http.Request)
	MarkPayrunAsDone(w http.ResponseWriter, r *http.Request)
	ApprovePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListMyPayslips(w http.ResponseWriter, r *http.Request)
	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	UpdateComponent(w http.ResponseWriter, r *http.Request)
	DeleteComponent(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetOrCreatePayrun implements PayrollHandler
func (h *payrollHandlerImpl) GetOrCreatePayrun(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetOrCreatePayrun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayrun implements PayrollHandler
func (h *payrollHandlerImpl) GetPayrun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payrun ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayrun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPayruns implements PayrollHandler
func (h *payrollHandlerImpl) ListPayruns(w http.ResponseWriter, r *http.Request) {
	var year *int
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = &parsed
	}

	results, err := h.payrollService.ListPayruns(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GeneratePayslips implements PayrollHandler
func (h *payrollHandlerImpl) GeneratePayslips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payrun ID is required", nil)
		return
	}

	req := payroll.GeneratePayslipsRequest{PayrunID: id}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		req.PayrunID = id
	}

	result, err := h.payrollService.GeneratePayslips(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips generated successfully", result)
}

// MarkPayrunAsDone implements PayrollHandler
func (h *payrollHandlerImpl) MarkPayrunAsDone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payrun ID is required", nil)
		return
	}

	result, err := h.payrollService.MarkPayrunAsDone(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrun marked as done", result)
}

// ApprovePayslip implements PayrollHandler
func (h *payrollHandlerImpl) ApprovePayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	result, err := h.payrollService.ApprovePayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip approved successfully", result)
}

// GetPayslip implements PayrollHandler
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyPayslips implements PayrollHandler
func (h *payrollHandlerImpl) ListMyPayslips(w http.ResponseWriter, r *http.Request) {
	results, err := h.payrollService.ListMyPayslips(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CreateComponent implements PayrollHandler
func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CreateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component created successfully", result)
}

// ListComponents implements PayrollHandler
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.payrollService.ListComponents(r.Context(), employeeID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateComponent implements PayrollHandler
func (h *payrollHandlerImpl) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Component ID is required", nil)
		return
	}

	var req payroll.UpdateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component updated successfully", result)
}

// DeleteComponent implements PayrollHandler
func (h *payrollHandlerImpl) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Component ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteComponent(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component deleted successfully", nil)
}
