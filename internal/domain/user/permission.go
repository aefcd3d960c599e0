package user

import "time"

// Module identifies a feature area guarded by role permissions.
type Module string

const (
	ModuleEmployee     Module = "employee"
	ModuleAttendance   Module = "attendance"
	ModuleLeave        Module = "leave"
	ModulePayroll      Module = "payroll"
	ModuleOrganization Module = "organization"
	ModuleUsers        Module = "users"
)

// Action is the operation being performed on a module.
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// RolePermission is one (role, module, action) grant row.
type RolePermission struct {
	ID        string
	Role      Role
	Module    Module
	Action    Action
	Allowed   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRolePermissions returns the seed grants applied when the permission
// store has no row for a (role, module, action) triple. Admin is allowed
// everything and is short-circuited in the middleware, so it has no rows here.
func DefaultRolePermissions() []RolePermission {
	allow := func(role Role, module Module, actions ...Action) []RolePermission {
		grants := make([]RolePermission, 0, len(actions))
		for _, action := range actions {
			grants = append(grants, RolePermission{Role: role, Module: module, Action: action, Allowed: true})
		}
		return grants
	}

	var grants []RolePermission
	grants = append(grants, allow(RoleHR, ModuleEmployee, ActionRead, ActionCreate, ActionUpdate, ActionDelete)...)
	grants = append(grants, allow(RoleHR, ModuleAttendance, ActionRead, ActionUpdate)...)
	grants = append(grants, allow(RoleHR, ModuleLeave, ActionRead, ActionCreate, ActionUpdate, ActionApprove)...)
	grants = append(grants, allow(RoleHR, ModulePayroll, ActionRead, ActionCreate, ActionUpdate, ActionApprove)...)
	grants = append(grants, allow(RoleHR, ModuleOrganization, ActionRead)...)
	grants = append(grants, allow(RoleEmployee, ModuleAttendance, ActionRead, ActionCreate)...)
	grants = append(grants, allow(RoleEmployee, ModuleLeave, ActionRead, ActionCreate)...)
	grants = append(grants, allow(RoleEmployee, ModulePayroll, ActionRead)...)
	return grants
}
