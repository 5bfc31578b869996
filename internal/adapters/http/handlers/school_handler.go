package handlers

import (
	"errors"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/pagination"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// SchoolHandler handles school administration endpoints (global admin only)
type SchoolHandler struct {
	schoolRepo *repositories.SchoolRepository
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolRepo *repositories.SchoolRepository) *SchoolHandler {
	return &SchoolHandler{schoolRepo: schoolRepo}
}

// SchoolRequest represents school create/update request body
type SchoolRequest struct {
	Code    string `json:"code" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,max=150"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=30"`
}

// Create handles school creation
// @Summary Create school
// @Description Register a new school tenant (Global admin only)
// @Tags Schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SchoolRequest true "School data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /schools [post]
func (h *SchoolHandler) Create(c *fiber.Ctx) error {
	var req SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	school := &models.School{
		Code:     req.Code,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := h.schoolRepo.Create(c.UserContext(), school); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "School code already exists")
		}
		return response.InternalServerError(c, "Failed to create school")
	}

	return response.Created(c, "School created successfully", school)
}

// Get handles fetching a single school
// @Summary Get school
// @Tags Schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /schools/{id} [get]
func (h *SchoolHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	school, err := h.schoolRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return response.NotFound(c, "School not found")
	}

	return response.Success(c, "School retrieved successfully", school)
}

// Update handles school updates
// @Summary Update school
// @Tags Schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param body body SchoolRequest true "School data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /schools/{id} [put]
func (h *SchoolHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	var req SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	school, err := h.schoolRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return response.NotFound(c, "School not found")
	}

	school.Code = req.Code
	school.Name = req.Name
	school.Address = req.Address
	school.Phone = req.Phone

	if err := h.schoolRepo.Update(c.UserContext(), school); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "School code already exists")
		}
		return response.InternalServerError(c, "Failed to update school")
	}

	return response.Success(c, "School updated successfully", school)
}

// Delete handles school removal
// @Summary Delete school
// @Tags Schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /schools/{id} [delete]
func (h *SchoolHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	if _, err := h.schoolRepo.GetByID(c.UserContext(), id); err != nil {
		return response.NotFound(c, "School not found")
	}

	if err := h.schoolRepo.Delete(c.UserContext(), id); err != nil {
		return response.InternalServerError(c, "Failed to delete school")
	}

	return response.Success(c, "School deleted successfully", nil)
}

// List handles listing schools
// @Summary List schools
// @Tags Schools
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /schools [get]
func (h *SchoolHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	schools, total, err := h.schoolRepo.List(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list schools")
	}

	return response.Success(c, "Schools retrieved successfully", pagination.NewResponse(schools, params, total))
}
