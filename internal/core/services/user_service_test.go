package services

import (
	"context"
	"testing"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_UnknownRole(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newMemUserRepo(), nil)

	_, err := svc.Create(context.Background(), globalScope(), &CreateUserInput{
		Email:    "new@schoolhub.io",
		FullName: "New User",
		Password: "password-123",
		Role:     "SUPERINTENDENT",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestUserCreate_TenantAdminCannotCreatePeers(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newMemUserRepo(), nil)

	_, err := svc.Create(context.Background(), tenantScope(3), &CreateUserInput{
		Email:    "peer@greenfield.edu",
		FullName: "Peer Admin",
		Password: "password-123",
		Role:     "TENANT_ADMIN",
	})
	assert.ErrorIs(t, err, ErrCannotManageRole)
}

func TestUserCreate_TenantRoleNeedsSchool(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newMemUserRepo(), nil)

	_, err := svc.Create(context.Background(), globalScope(), &CreateUserInput{
		Email:    "coord@schoolhub.io",
		FullName: "Detached Coordinator",
		Password: "password-123",
		Role:     "COORDINATOR",
	})
	assert.ErrorIs(t, err, ErrRoleNeedsSchool)
}

func TestUserCreate_GlobalAdminHasNoSchool(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := NewUserService(repo, nil)

	// the caller-supplied school is dropped for global roles
	user, err := svc.Create(context.Background(), globalScope(), &CreateUserInput{
		Email:    "root@schoolhub.io",
		FullName: "Second Root",
		Password: "password-123",
		Role:     "GLOBAL_ADMIN",
		SchoolID: uintPtr(3),
	})
	require.NoError(t, err)
	assert.Nil(t, user.SchoolID)
	assert.True(t, user.IsActive)
	assert.True(t, password.Verify("password-123", user.Password))
}

func TestUserCreate_EmailTaken(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo(&models.User{ID: 1, Email: "root@schoolhub.io", Role: domain.RoleGlobalAdmin})
	svc := NewUserService(repo, nil)

	_, err := svc.Create(context.Background(), globalScope(), &CreateUserInput{
		Email:    "root@schoolhub.io",
		FullName: "Impostor",
		Password: "password-123",
		Role:     "GLOBAL_ADMIN",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserGetByID_CrossTenantIsNotFound(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo(&models.User{
		ID: 5, Email: "c@hillside.edu", Role: domain.RoleCoordinator, SchoolID: uintPtr(8), IsActive: true,
	})
	svc := NewUserService(repo, nil)

	_, err := svc.GetByID(context.Background(), tenantScope(3), 5)
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := svc.GetByID(context.Background(), tenantScope(8), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
}

func TestUserSetActive_SelfDeactivationBlocked(t *testing.T) {
	t.Parallel()

	actor := tenantScope(3)
	repo := newMemUserRepo(&models.User{
		ID: actor.PrincipalID, Email: "a@greenfield.edu", Role: domain.RoleTenantAdmin, SchoolID: uintPtr(3), IsActive: true,
	})
	svc := NewUserService(repo, nil)

	err := svc.SetActive(context.Background(), actor, actor.PrincipalID, false)
	assert.ErrorIs(t, err, ErrSelfDeactivation)
}

func TestUserSetActive_CrossTenantIsNotFound(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo(&models.User{
		ID: 5, Email: "c@hillside.edu", Role: domain.RoleCoordinator, SchoolID: uintPtr(8), IsActive: true,
	})
	svc := NewUserService(repo, nil)

	err := svc.SetActive(context.Background(), tenantScope(3), 5, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
