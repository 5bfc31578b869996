package handlers

import (
	"schoolhub-erp/internal/core/services"
	"schoolhub-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard and gamification endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	gamification     *services.GamificationService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, gamification *services.GamificationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		gamification:     gamification,
	}
}

// Get routes the caller to the dashboard for their role
// @Summary Get dashboard
// @Description Global admins get the platform dashboard, tenant principals get their school's
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if scope.Global() {
		data, err := h.dashboardService.GetGlobalDashboard(c.UserContext())
		if err != nil {
			return response.InternalServerError(c, "Failed to build dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)
	}

	if scope.SchoolID == nil {
		return response.Forbidden(c, "No school attached to this account")
	}

	data, err := h.dashboardService.GetSchoolDashboard(c.UserContext(), *scope.SchoolID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// MyPoints returns the caller's point total
// @Summary Get my points
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /points/me [get]
func (h *DashboardHandler) MyPoints(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	total, err := h.gamification.MyPoints(c.UserContext(), user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get points")
	}

	return response.Success(c, "Points retrieved successfully", fiber.Map{
		"points": total,
	})
}

// Leaderboard returns the caller's school leaderboard
// @Summary Get school leaderboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of rows"
// @Success 200 {object} response.Response
// @Router /points/leaderboard [get]
func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	if scope.SchoolID == nil {
		return response.Forbidden(c, "No school attached to this account")
	}

	rows, err := h.gamification.Leaderboard(c.UserContext(), *scope.SchoolID, c.QueryInt("limit", 10))
	if err != nil {
		return response.InternalServerError(c, "Failed to get leaderboard")
	}

	return response.Success(c, "Leaderboard retrieved successfully", rows)
}
