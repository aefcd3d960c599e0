package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUserRole(w http.ResponseWriter, r *http.Request)
	ListPermissions(w http.ResponseWriter, r *http.Request)
	UpdatePermission(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// ListUsers implements UserHandler
func (h *userHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	results, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateUserRole implements UserHandler
func (h *userHandlerImpl) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req user.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.UpdateUserRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User role updated successfully", result)
}

// ListPermissions implements UserHandler
func (h *userHandlerImpl) ListPermissions(w http.ResponseWriter, r *http.Request) {
	var role *user.Role
	if q := r.URL.Query().Get("role"); q != "" {
		parsed := user.Role(q)
		if !parsed.Valid() {
			response.BadRequest(w, "role must be one of ADMIN, HR, EMPLOYEE", nil)
			return
		}
		role = &parsed
	}

	results, err := h.userService.ListPermissions(r.Context(), role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdatePermission implements UserHandler
func (h *userHandlerImpl) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateRolePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.UpdatePermission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission updated successfully", result)
}
