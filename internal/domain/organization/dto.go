package organization

import "github.com/peoplecore/hrms-backend-go/internal/pkg/validator"

type OrganizationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type UpdateOrganizationRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func (r UpdateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
