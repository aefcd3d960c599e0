package organization

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/hrms-backend-go/internal/domain/organization"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
}

func NewOrganizationService(organizationRepo organization.OrganizationRepository) organization.OrganizationService {
	return &OrganizationServiceImpl{
		OrganizationRepository: organizationRepo,
	}
}

func organizationFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}

func toOrganizationResponse(org organization.Organization) organization.OrganizationResponse {
	return organization.OrganizationResponse{
		ID:      org.ID,
		Name:    org.Name,
		Address: org.Address,
		Phone:   org.Phone,
		Email:   org.Email,
		LogoURL: org.LogoURL,
	}
}

// Get implements organization.OrganizationService.
func (s *OrganizationServiceImpl) Get(ctx context.Context) (organization.OrganizationResponse, error) {
	organizationID, err := organizationFromContext(ctx)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, organizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	return toOrganizationResponse(org), nil
}

// Update implements organization.OrganizationService.
func (s *OrganizationServiceImpl) Update(ctx context.Context, req organization.UpdateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	organizationID, err := organizationFromContext(ctx)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, organizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Address != nil {
		org.Address = req.Address
	}
	if req.Phone != nil {
		org.Phone = req.Phone
	}
	if req.Email != nil {
		org.Email = req.Email
	}

	updated, err := s.OrganizationRepository.Update(ctx, org)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	return toOrganizationResponse(updated), nil
}
