package token

import (
	"testing"
	"time"

	"schoolhub-erp/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func uintPtr(v uint) *uint { return &v }

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	signed, err := Generate(42, domain.RoleTenantAdmin, uintPtr(7), testSecret)
	require.NoError(t, err)

	claims, err := Validate(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.PrincipalID)
	assert.Equal(t, domain.RoleTenantAdmin, claims.Role)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, uint(7), *claims.SchoolID)
}

func TestValidate_GlobalAdminHasNoSchool(t *testing.T) {
	t.Parallel()

	signed, err := Generate(1, domain.RoleGlobalAdmin, nil, testSecret)
	require.NoError(t, err)

	claims, err := Validate(signed, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.SchoolID)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := Generate(1, domain.RoleCoordinator, uintPtr(3), "right-secret")
	require.NoError(t, err)

	_, err = Validate(signed, "wrong-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Validate("not.a.jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	// Issued exactly one lifetime ago: the boundary instant is already expired.
	signed, err := GenerateAt(1, domain.RoleTenantAdmin, uintPtr(2), testSecret, time.Now().Add(-Lifetime))
	require.NoError(t, err)

	_, err = Validate(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Issued just inside the window: still valid.
	signed, err = GenerateAt(1, domain.RoleTenantAdmin, uintPtr(2), testSecret, time.Now().Add(-Lifetime+5*time.Second))
	require.NoError(t, err)

	_, err = Validate(signed, testSecret)
	assert.NoError(t, err)
}
