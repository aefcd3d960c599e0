package organization

import "context"

type OrganizationService interface {
	Get(ctx context.Context) (OrganizationResponse, error)
	Update(ctx context.Context, req UpdateOrganizationRequest) (OrganizationResponse, error)
}
