package services

import (
	"context"
	"testing"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/config"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/password"
	"schoolhub-erp/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "auth-service-test-secret"

// memUserRepo is an in-memory UserRepository for service tests
type memUserRepo struct {
	byID    map[uint]*models.User
	byEmail map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{byID: map[uint]*models.User{}, byEmail: map[string]*models.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = uint(len(r.byID) + 1)
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id uint, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepo) List(context.Context, *domain.Scope, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepo) ListAdminsBySchool(context.Context, uint) ([]*models.User, error) {
	return nil, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testJWTSecret
	return cfg
}

func seededUser(t *testing.T, active bool) *models.User {
	t.Helper()
	hash, err := password.Hash("correct-password")
	require.NoError(t, err)
	return &models.User{
		ID:       7,
		Email:    "admin@greenfield.edu",
		FullName: "Greenfield Admin",
		Password: hash,
		Role:     domain.RoleTenantAdmin,
		SchoolID: uintPtr(3),
		IsActive: active,
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo(seededUser(t, true)), testConfig())

	got, err := svc.Login(context.Background(), &LoginInput{
		Email:    "admin@greenfield.edu",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@greenfield.edu", got.User.Email)

	claims, err := token.Validate(got.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.PrincipalID)
	assert.Equal(t, domain.RoleTenantAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo(seededUser(t, true)), testConfig())

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "admin@greenfield.edu",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo(), testConfig())

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@nowhere.edu",
		Password: "whatever",
	})
	// unknown email and wrong password are indistinguishable to the caller
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newMemUserRepo(seededUser(t, false)), testConfig())

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "admin@greenfield.edu",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo(seededUser(t, true))
	svc := NewAuthService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), 7, &ChangePasswordInput{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-password",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), 7, &ChangePasswordInput{
		CurrentPassword: "correct-password",
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, password.Verify("brand-new-password", updated.Password))
}
