package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestScopeGlobal(t *testing.T) {
	t.Parallel()

	admin := &Scope{PrincipalID: 1, Role: RoleGlobalAdmin}
	tenant := &Scope{PrincipalID: 2, Role: RoleTenantAdmin, SchoolID: uintPtr(7)}

	assert.True(t, admin.Global())
	assert.False(t, tenant.Global())
}

func TestScopeOwnsSchool(t *testing.T) {
	t.Parallel()

	admin := &Scope{PrincipalID: 1, Role: RoleGlobalAdmin}
	tenant := &Scope{PrincipalID: 2, Role: RoleCoordinator, SchoolID: uintPtr(7)}

	// global scope owns everything, including shared rows
	assert.True(t, admin.OwnsSchool(nil))
	assert.True(t, admin.OwnsSchool(uintPtr(7)))

	assert.True(t, tenant.OwnsSchool(uintPtr(7)))
	assert.False(t, tenant.OwnsSchool(uintPtr(8)))
	// a shared row is visible to a tenant but never owned by it
	assert.False(t, tenant.OwnsSchool(nil))

	detached := &Scope{PrincipalID: 3, Role: RoleTenantAdmin}
	assert.False(t, detached.OwnsSchool(uintPtr(7)))
}
