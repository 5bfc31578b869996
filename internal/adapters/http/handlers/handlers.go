package handlers

import (
	"strconv"

	"schoolhub-erp/internal/adapters/http/middleware"
	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// currentUser extracts the authenticated principal set by the auth middleware
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(middleware.LocalsUser).(*models.User)
	return user, ok
}

// currentScope extracts the authorization scope set by the auth middleware
func currentScope(c *fiber.Ctx) (*domain.Scope, bool) {
	return middleware.CurrentScope(c)
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
