package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a principal can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager" // legacy; treated like employee by the visibility policy
	RoleEmployee Role = "employee"
)

// legacyUserRole is how employees were stored before the role model was settled.
const legacyUserRole = "user"

// ParseRole converts a stored or claimed role string into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleManager):
		return RoleManager, nil
	case string(RoleEmployee), legacyUserRole:
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Principal is an authenticated actor. It is built once per request from verified claims
// and the stored user row, and is never taken from a request body.
type Principal struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	ManagerID *int64 `json:"managerId,omitempty"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
