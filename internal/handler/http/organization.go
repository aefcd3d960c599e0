package http

import (
	"encoding/json"
	"net/http"

	"github.com/peoplecore/hrms-backend-go/internal/domain/organization"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	GetOrganization(w http.ResponseWriter, r *http.Request)
	UpdateOrganization(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{
		organizationService: organizationService,
	}
}

// GetOrganization implements OrganizationHandler
func (h *organizationHandlerImpl) GetOrganization(w http.ResponseWriter, r *http.Request) {
	result, err := h.organizationService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOrganization implements OrganizationHandler
func (h *organizationHandlerImpl) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organization.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.organizationService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization updated successfully", result)
}
