package token

import "strings"

// Role represents an application role carried in the token's claims.
type Role string

const (
	RoleDonor      Role = "Donor"
	RoleHospital   Role = "Hospital"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"

	// RoleUnknown is any missing or unrecognised role claim. It never matches
	// an allowed-role set, so it carries no access.
	RoleUnknown Role = ""
)

// ParseRole maps a raw role claim onto one of the known roles. Unrecognised
// values map to RoleUnknown.
func ParseRole(raw string) Role {
	switch strings.TrimSpace(raw) {
	case string(RoleDonor):
		return RoleDonor
	case string(RoleHospital):
		return RoleHospital
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	}
	return RoleUnknown
}

// IsAdmin reports whether the role grants admin-level access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// In reports whether the role is a member of the given set.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
