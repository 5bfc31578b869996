package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/config"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func uintPtr(v uint) *uint { return &v }

// stubUserRepo serves a fixed set of principals to the guard
type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) Create(context.Context, *models.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
func (r *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, domain.ErrNotFound
}
func (r *stubUserRepo) Update(context.Context, *models.User) error  { return nil }
func (r *stubUserRepo) SetActive(context.Context, uint, bool) error { return nil }
func (r *stubUserRepo) List(context.Context, *domain.Scope, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) ListAdminsBySchool(context.Context, uint) ([]*models.User, error) {
	return nil, nil
}
func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func newGuardedApp(repo *stubUserRepo, extra ...fiber.Handler) *fiber.App {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret

	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(cfg, repo)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		scope, ok := CurrentScope(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"principal_id": scope.PrincipalID, "role": scope.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(&stubUserRepo{})
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(3), IsActive: true},
	}}
	app := newGuardedApp(repo)

	signed, err := token.Generate(7, domain.RoleTenantAdmin, uintPtr(3), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleCoordinator, SchoolID: uintPtr(3), IsActive: true},
	}}
	app := newGuardedApp(repo)

	signed, err := token.Generate(7, domain.RoleCoordinator, uintPtr(3), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: signed})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_DeactivatedPrincipalIsForbidden(t *testing.T) {
	t.Parallel()

	// the token is still unexpired but the row says inactive
	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(3), IsActive: false},
	}}
	app := newGuardedApp(repo)

	signed, err := token.Generate(7, domain.RoleTenantAdmin, uintPtr(3), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_DeletedPrincipalIsForbidden(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(&stubUserRepo{})

	signed, err := token.Generate(99, domain.RoleTenantAdmin, uintPtr(3), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(3), IsActive: true},
	}}
	app := newGuardedApp(repo)

	signed, err := token.GenerateAt(7, domain.RoleTenantAdmin, uintPtr(3), testSecret, time.Now().Add(-token.Lifetime))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleCoordinator, SchoolID: uintPtr(3), IsActive: true},
	}}
	app := newGuardedApp(repo, GlobalAdminOnly())

	signed, err := token.Generate(7, domain.RoleCoordinator, uintPtr(3), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// The role on the row wins over the role frozen in the token.
func TestAuthMiddleware_RoleComesFromStore(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Role: domain.RoleCoordinator, SchoolID: uintPtr(3), IsActive: true},
	}}
	app := newGuardedApp(repo, GlobalAdminOnly())

	// token claims global admin; the row has since been demoted
	signed, err := token.Generate(7, domain.RoleGlobalAdmin, nil, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
