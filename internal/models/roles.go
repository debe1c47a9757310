package models

// Built-in role names.
const (
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
	RoleCrew      = "crew"
	RolePassenger = "passenger"
)

// DefaultRole is granted to every newly registered user.
const DefaultRole = RolePassenger

// Permission is a capability tag attached to a role.
type Permission string

const (
	PermFlightsRead   Permission = "flights:read"
	PermFlightsManage Permission = "flights:manage"
	PermCrewRead      Permission = "crew:read"
	PermCrewWrite     Permission = "crew:write"
	PermRoutesRead    Permission = "routes:read"
	PermRoutesManage  Permission = "routes:manage"
	PermTicketsBook   Permission = "tickets:book"
	PermUsersManage   Permission = "users:manage"
)

var knownPermissions = map[Permission]struct{}{
	PermFlightsRead:   {},
	PermFlightsManage: {},
	PermCrewRead:      {},
	PermCrewWrite:     {},
	PermRoutesRead:    {},
	PermRoutesManage:  {},
	PermTicketsBook:   {},
	PermUsersManage:   {},
}

// ParsePermission reports whether s names a known permission.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	_, ok := knownPermissions[p]
	return p, ok
}

// Role groups a set of permissions.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

// Can reports whether the role grants p.
func (r Role) Can(p Permission) bool {
	for _, granted := range r.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
