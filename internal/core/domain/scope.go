package domain

// Scope carries the resolved identity a request acts under.
// It is built by the auth middleware from the principal's current database row,
// never from token claims alone.
type Scope struct {
	PrincipalID uint
	Role        Role
	SchoolID    *uint
}

// Global reports whether the scope bypasses tenant filtering.
func (s *Scope) Global() bool {
	return s.Role.IsGlobal()
}

// OwnsSchool reports whether the scope belongs to the given tenant.
// A nil schoolID (global resource) is never "owned" by a tenant scope.
func (s *Scope) OwnsSchool(schoolID *uint) bool {
	if s.Global() {
		return true
	}
	if schoolID == nil || s.SchoolID == nil {
		return false
	}
	return *schoolID == *s.SchoolID
}
