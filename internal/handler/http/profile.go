package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/peoplecore/hrms-backend-go/internal/domain/employee"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	GetMyProfile(w http.ResponseWriter, r *http.Request)
	UpdateMyProfile(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewProfileHandler(employeeService employee.EmployeeService) ProfileHandler {
	return &profileHandlerImpl{
		employeeService: employeeService,
	}
}

// GetMyProfile implements ProfileHandler
func (h *profileHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetMyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMyProfile implements ProfileHandler
func (h *profileHandlerImpl) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.UpdateMyProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", result)
}

// UploadAvatar implements ProfileHandler
func (h *profileHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 5MB)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Avatar file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	avatarURL, err := h.employeeService.UploadAvatar(r.Context(), file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar uploaded successfully", map[string]string{"avatar_url": avatarURL})
}
