package handlers

import (
	"errors"

	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/core/services"
	"schoolhub-erp/internal/pkg/pagination"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles the registration workflow endpoints
type RegistrationHandler struct {
	regService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(regService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// EvidenceRequest represents an evidence attachment body
type EvidenceRequest struct {
	DocumentIDs []uint `json:"document_ids"`
}

// Register handles registering the caller's school for a resource
// @Summary Register for a resource
// @Description Register the caller's school for a club, event, training or clause. Attaching evidence submits immediately
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Resource kind" Enums(club, event, training, iso_clause)
// @Param id path int true "Resource ID"
// @Param body body EvidenceRequest false "Optional evidence"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /registrations/{kind}/{id} [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	kind, ok := domain.ParseResourceKind(c.Params("kind"))
	if !ok {
		return response.BadRequest(c, "Unknown resource kind")
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	var req EvidenceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	reg, err := h.regService.Register(c.UserContext(), scope, kind, resourceID, req.DocumentIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotRegistrant):
			return response.Forbidden(c, "Your role cannot register")
		case errors.Is(err, services.ErrNotRegistrable):
			return response.BadRequest(c, "This resource kind cannot be registered for")
		case errors.Is(err, services.ErrResourceClosed):
			return response.BadRequest(c, "Resource is closed for registration")
		case errors.Is(err, services.ErrAlreadyRegistered):
			return response.Conflict(c, "Already registered for this resource")
		case errors.Is(err, services.ErrEvidenceNotFound):
			return response.NotFound(c, "Evidence document not found")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Resource not found")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	return response.Created(c, "Registered successfully", reg)
}

// Unregister handles removing a registration by resource
// @Summary Unregister from a resource
// @Description Remove the caller's school's non-approved registration for a resource
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Resource kind" Enums(club, event, training, iso_clause)
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /registrations/{kind}/{id} [delete]
func (h *RegistrationHandler) Unregister(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	kind, ok := domain.ParseResourceKind(c.Params("kind"))
	if !ok {
		return response.BadRequest(c, "Unknown resource kind")
	}

	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	if err := h.regService.UnregisterByResource(c.UserContext(), scope, kind, resourceID); err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrApprovedRegistration):
			return response.BadRequest(c, "Approved registrations cannot be removed")
		default:
			return response.InternalServerError(c, "Failed to unregister")
		}
	}

	return response.Success(c, "Unregistered successfully", nil)
}

// Delete handles force-removing a registration by ID (Global admin only)
// @Summary Delete registration
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /registrations/{id} [delete]
func (h *RegistrationHandler) Delete(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid registration ID")
	}

	if err := h.regService.Unregister(c.UserContext(), scope, id); err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrApprovedRegistration):
			return response.BadRequest(c, "Approved registrations cannot be removed")
		default:
			return response.InternalServerError(c, "Failed to delete registration")
		}
	}

	return response.Success(c, "Registration deleted successfully", nil)
}

// Submit handles submitting a registration for review
// @Summary Submit registration
// @Description Move a pending or rejected registration to submitted. Submitting twice is a no-op
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param body body EvidenceRequest false "Optional evidence"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /registrations/{id}/submit [post]
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid registration ID")
	}

	var req EvidenceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	reg, err := h.regService.Submit(c.UserContext(), scope, id, req.DocumentIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Registration cannot be submitted from its current status")
		case errors.Is(err, services.ErrEvidenceNotFound):
			return response.NotFound(c, "Evidence document not found")
		default:
			return response.InternalServerError(c, "Failed to submit registration")
		}
	}

	return response.Success(c, "Registration submitted successfully", reg)
}

// Review handles approving or rejecting a submission (Global admin only)
// @Summary Review registration
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param body body services.ReviewInput true "Review decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /registrations/{id}/review [post]
func (h *RegistrationHandler) Review(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid registration ID")
	}

	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	reg, err := h.regService.Review(c.UserContext(), scope, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotReviewable):
			return response.Forbidden(c, "Only a global admin may review registrations")
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Only submitted registrations can be reviewed")
		case errors.Is(err, services.ErrUnknownDecision):
			return response.BadRequest(c, "Decision must be approved or rejected")
		default:
			return response.InternalServerError(c, "Failed to review registration")
		}
	}

	return response.Success(c, "Registration reviewed successfully", reg)
}

// Get handles fetching a single registration
// @Summary Get registration
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) Get(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid registration ID")
	}

	reg, err := h.regService.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Registration not found")
	}

	return response.Success(c, "Registration retrieved successfully", reg)
}

// List handles listing registrations
// @Summary List registrations
// @Description List registrations visible to the caller, optionally filtered by status
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(PENDING, SUBMITTED, APPROVED, REJECTED)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	regs, total, err := h.regService.List(c.UserContext(), scope, c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Unknown status filter")
		}
		return response.InternalServerError(c, "Failed to list registrations")
	}

	return response.Success(c, "Registrations retrieved successfully", pagination.NewResponse(regs, params, total))
}
