package domain

import "strings"

// Role is the closed set of principal roles.
type Role string

const (
	// RoleGlobalAdmin has cross-tenant visibility and sole review authority.
	RoleGlobalAdmin Role = "GLOBAL_ADMIN"
	// RoleTenantAdmin administers a single school.
	RoleTenantAdmin Role = "TENANT_ADMIN"
	// RoleCoordinator manages clubs/events for a single school.
	RoleCoordinator Role = "COORDINATOR"
)

// legacy identifiers still found in imported data; folded to canonical on parse
var legacyRoles = map[string]Role{
	"super-admin":  RoleGlobalAdmin,
	"super_admin":  RoleGlobalAdmin,
	"school":       RoleTenantAdmin,
	"school-admin": RoleTenantAdmin,
	"school_admin": RoleTenantAdmin,
	"eca":          RoleCoordinator,
}

// ParseRole resolves a role string to its canonical Role.
// Accepts canonical identifiers (case-insensitive) and legacy variants.
func ParseRole(s string) (Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch Role(strings.ToUpper(normalized)) {
	case RoleGlobalAdmin, RoleTenantAdmin, RoleCoordinator:
		return Role(strings.ToUpper(normalized)), true
	}
	if role, ok := legacyRoles[normalized]; ok {
		return role, true
	}
	return "", false
}

// IsGlobal reports whether the role bypasses tenant scoping.
func (r Role) IsGlobal() bool {
	return r == RoleGlobalAdmin
}

// RequiresTenant reports whether a principal with this role must belong to a school.
func (r Role) RequiresTenant() bool {
	return r == RoleTenantAdmin || r == RoleCoordinator
}

// CanRegister reports whether the role may create registrations.
func (r Role) CanRegister() bool {
	return r == RoleTenantAdmin || r == RoleCoordinator
}
