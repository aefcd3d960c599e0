package user

import "time"

type User struct {
	ID             string
	OrganizationID string
	EmployeeID     *string
	Email          string
	PasswordHash   string
	FullName       string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}
