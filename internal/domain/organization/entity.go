package organization

import "time"

type Organization struct {
	ID        string
	Name      string
	Address   *string
	Phone     *string
	Email     *string
	LogoURL   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
