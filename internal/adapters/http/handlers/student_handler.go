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

// StudentHandler handles student roster endpoints. Students are strictly
// tenant-owned: no shared rows, no cross-tenant reads.
type StudentHandler struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentRepo *repositories.StudentRepository) *StudentHandler {
	return &StudentHandler{studentRepo: studentRepo}
}

// StudentRequest represents student create/update request body
type StudentRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=80"`
	LastName      string `json:"last_name" validate:"required,max=80"`
	Grade         string `json:"grade" validate:"max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	GuardianPhone string `json:"guardian_phone" validate:"max=30"`
}

// Create handles student creation
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StudentRequest true "Student data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students [post]
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Grade:         req.Grade,
		Email:         req.Email,
		GuardianPhone: req.GuardianPhone,
	}

	if err := h.studentRepo.Create(c.UserContext(), scope, student); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "Students belong to a school")
		}
		return response.InternalServerError(c, "Failed to create student")
	}

	return response.Created(c, "Student created successfully", student)
}

// Get handles fetching a single student
// @Summary Get student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	student, err := h.studentRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Student not found")
	}

	return response.Success(c, "Student retrieved successfully", student)
}

// Update handles student updates
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body StudentRequest true "Student data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	student := &models.Student{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Grade:         req.Grade,
		Email:         req.Email,
		GuardianPhone: req.GuardianPhone,
	}

	if err := h.studentRepo.Update(c.UserContext(), scope, student); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to update student")
	}

	return response.Success(c, "Student updated successfully", student)
}

// Delete handles student removal
// @Summary Delete student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	if err := h.studentRepo.Delete(c.UserContext(), scope, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to delete student")
	}

	return response.Success(c, "Student deleted successfully", nil)
}

// List handles listing students
// @Summary List students
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /students [get]
func (h *StudentHandler) List(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	students, total, err := h.studentRepo.List(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list students")
	}

	return response.Success(c, "Students retrieved successfully", pagination.NewResponse(students, params, total))
}
