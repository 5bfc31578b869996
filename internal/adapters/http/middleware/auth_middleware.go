package middleware

import (
	"errors"
	"strings"

	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/config"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalsUser  = "user"
	LocalsScope = "scope"
)

// AuthMiddleware creates authentication middleware. It validates the session
// token and then reloads the principal row, so role and school scoping always
// reflect the store, not the token. A deactivated or deleted principal is
// rejected even while their token is unexpired.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessionToken string

		// 1. Try to get token from cookie first
		sessionToken = c.Cookies("auth-token")

		// 2. If not in cookie, try Authorization header
		if sessionToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				sessionToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if sessionToken == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		// 4. Validate token
		claims, err := token.Validate(sessionToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return response.Unauthorized(c, "Session expired")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		// 5. Reload the principal
		user, err := userRepo.GetByID(c.UserContext(), claims.PrincipalID)
		if err != nil {
			return response.Forbidden(c, "Account no longer exists")
		}
		if !user.IsActive {
			return response.Forbidden(c, "Account is deactivated")
		}

		// 6. Set principal info in context
		c.Locals(LocalsUser, user)
		c.Locals(LocalsScope, user.Scope())

		return c.Next()
	}
}

// RequireRoles creates role-based authorization middleware
func RequireRoles(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, ok := c.Locals(LocalsScope).(*domain.Scope)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if scope.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// GlobalAdminOnly middleware allows only GLOBAL_ADMIN
func GlobalAdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleGlobalAdmin)
}

// AnyAdmin middleware allows GLOBAL_ADMIN or TENANT_ADMIN
func AnyAdmin() fiber.Handler {
	return RequireRoles(domain.RoleGlobalAdmin, domain.RoleTenantAdmin)
}

// TenantRoles middleware allows TENANT_ADMIN or COORDINATOR
func TenantRoles() fiber.Handler {
	return RequireRoles(domain.RoleTenantAdmin, domain.RoleCoordinator)
}

// CurrentScope extracts the authorization scope stored by AuthMiddleware
func CurrentScope(c *fiber.Ctx) (*domain.Scope, bool) {
	scope, ok := c.Locals(LocalsScope).(*domain.Scope)
	return scope, ok
}
