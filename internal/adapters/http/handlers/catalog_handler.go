package handlers

import (
	"errors"
	"time"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/pagination"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the registrable resource catalog: clubs, events,
// trainings and the global clause list. Reads are tenant-scoped in the
// repositories; a row a school does not see does not exist for it.
type CatalogHandler struct {
	clubRepo     *repositories.ClubRepository
	eventRepo    *repositories.EventRepository
	trainingRepo *repositories.TrainingRepository
	clauseRepo   *repositories.ClauseRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	clubRepo *repositories.ClubRepository,
	eventRepo *repositories.EventRepository,
	trainingRepo *repositories.TrainingRepository,
	clauseRepo *repositories.ClauseRepository,
) *CatalogHandler {
	return &CatalogHandler{
		clubRepo:     clubRepo,
		eventRepo:    eventRepo,
		trainingRepo: trainingRepo,
		clauseRepo:   clauseRepo,
	}
}

// ============================================================
// Clubs
// ============================================================

// ClubRequest represents club create/update request body
type ClubRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"max=50"`
	Capacity    int    `json:"capacity" validate:"min=0"`
	IsOpen      *bool  `json:"is_open"`
}

// CreateClub creates a club
// @Summary Create club
// @Description Create a club. A global admin creates shared clubs, a tenant admin creates clubs for their own school
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClubRequest true "Club data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /clubs [post]
func (h *CatalogHandler) CreateClub(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ClubRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Capacity:    req.Capacity,
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		club.IsOpen = *req.IsOpen
	}

	if err := h.clubRepo.Create(c.UserContext(), scope, club); err != nil {
		return response.InternalServerError(c, "Failed to create club")
	}

	return response.Created(c, "Club created successfully", club)
}

// GetClub gets a club visible to the caller
// @Summary Get club
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [get]
func (h *CatalogHandler) GetClub(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	club, err := h.clubRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Club not found")
	}

	return response.Success(c, "Club retrieved successfully", club)
}

// UpdateClub updates an owned club
// @Summary Update club
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param body body ClubRequest true "Club data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [put]
func (h *CatalogHandler) UpdateClub(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var req ClubRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	club := &models.Club{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Capacity:    req.Capacity,
		IsOpen:      req.IsOpen == nil || *req.IsOpen,
	}

	if err := h.clubRepo.Update(c.UserContext(), scope, club); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Club not found")
		}
		return response.InternalServerError(c, "Failed to update club")
	}

	return response.Success(c, "Club updated successfully", club)
}

// DeleteClub deletes an owned club
// @Summary Delete club
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [delete]
func (h *CatalogHandler) DeleteClub(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	if err := h.clubRepo.Delete(c.UserContext(), scope, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Club not found")
		}
		return response.InternalServerError(c, "Failed to delete club")
	}

	return response.Success(c, "Club deleted successfully", nil)
}

// ListClubs lists clubs visible to the caller
// @Summary List clubs
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /clubs [get]
func (h *CatalogHandler) ListClubs(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	clubs, total, err := h.clubRepo.List(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clubs")
	}

	return response.Success(c, "Clubs retrieved successfully", pagination.NewResponse(clubs, params, total))
}

// ============================================================
// Events
// ============================================================

// EventRequest represents event create/update request body
type EventRequest struct {
	Title       string     `json:"title" validate:"required,max=150"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=200"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	IsOpen      *bool      `json:"is_open"`
}

// CreateEvent creates an event
// @Summary Create event
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /events [post]
func (h *CatalogHandler) CreateEvent(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if req.EndsAt != nil && !req.EndsAt.After(req.StartsAt) {
		return response.BadRequest(c, "Event end must be after start")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		event.IsOpen = *req.IsOpen
	}

	if err := h.eventRepo.Create(c.UserContext(), scope, event); err != nil {
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, "Event created successfully", event)
}

// GetEvent gets an event visible to the caller
// @Summary Get event
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *CatalogHandler) GetEvent(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Event not found")
	}

	return response.Success(c, "Event retrieved successfully", event)
}

// UpdateEvent updates an owned event
// @Summary Update event
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [put]
func (h *CatalogHandler) UpdateEvent(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	event := &models.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsOpen:      req.IsOpen == nil || *req.IsOpen,
	}

	if err := h.eventRepo.Update(c.UserContext(), scope, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to update event")
	}

	return response.Success(c, "Event updated successfully", event)
}

// DeleteEvent deletes an owned event
// @Summary Delete event
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *CatalogHandler) DeleteEvent(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventRepo.Delete(c.UserContext(), scope, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to delete event")
	}

	return response.Success(c, "Event deleted successfully", nil)
}

// ListEvents lists events visible to the caller
// @Summary List events
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *CatalogHandler) ListEvents(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	events, total, err := h.eventRepo.List(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", pagination.NewResponse(events, params, total))
}

// ============================================================
// Trainings
// ============================================================

// TrainingRequest represents training create/update request body
type TrainingRequest struct {
	Title       string    `json:"title" validate:"required,max=150"`
	Description string    `json:"description"`
	Provider    string    `json:"provider" validate:"max=100"`
	Seats       int       `json:"seats" validate:"min=0"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	IsOpen      *bool     `json:"is_open"`
}

// CreateTraining creates a training
// @Summary Create training
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TrainingRequest true "Training data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /trainings [post]
func (h *CatalogHandler) CreateTraining(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req TrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	training := &models.Training{
		Title:       req.Title,
		Description: req.Description,
		Provider:    req.Provider,
		Seats:       req.Seats,
		StartsAt:    req.StartsAt,
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		training.IsOpen = *req.IsOpen
	}

	if err := h.trainingRepo.Create(c.UserContext(), scope, training); err != nil {
		return response.InternalServerError(c, "Failed to create training")
	}

	return response.Created(c, "Training created successfully", training)
}

// GetTraining gets a training visible to the caller
// @Summary Get training
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /trainings/{id} [get]
func (h *CatalogHandler) GetTraining(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid training ID")
	}

	training, err := h.trainingRepo.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Training not found")
	}

	return response.Success(c, "Training retrieved successfully", training)
}

// UpdateTraining updates an owned training
// @Summary Update training
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training ID"
// @Param body body TrainingRequest true "Training data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /trainings/{id} [put]
func (h *CatalogHandler) UpdateTraining(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid training ID")
	}

	var req TrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	training := &models.Training{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Provider:    req.Provider,
		Seats:       req.Seats,
		StartsAt:    req.StartsAt,
		IsOpen:      req.IsOpen == nil || *req.IsOpen,
	}

	if err := h.trainingRepo.Update(c.UserContext(), scope, training); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Training not found")
		}
		return response.InternalServerError(c, "Failed to update training")
	}

	return response.Success(c, "Training updated successfully", training)
}

// DeleteTraining deletes an owned training
// @Summary Delete training
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /trainings/{id} [delete]
func (h *CatalogHandler) DeleteTraining(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid training ID")
	}

	if err := h.trainingRepo.Delete(c.UserContext(), scope, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Training not found")
		}
		return response.InternalServerError(c, "Failed to delete training")
	}

	return response.Success(c, "Training deleted successfully", nil)
}

// ListTrainings lists trainings visible to the caller
// @Summary List trainings
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /trainings [get]
func (h *CatalogHandler) ListTrainings(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	trainings, total, err := h.trainingRepo.List(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list trainings")
	}

	return response.Success(c, "Trainings retrieved successfully", pagination.NewResponse(trainings, params, total))
}

// ============================================================
// Clauses (global master data)
// ============================================================

// ClauseRequest represents clause create/update request body
type ClauseRequest struct {
	Code        string `json:"code" validate:"required,max=20"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateClause creates a clause (Global admin only)
// @Summary Create clause
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClauseRequest true "Clause data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clauses [post]
func (h *CatalogHandler) CreateClause(c *fiber.Ctx) error {
	var req ClauseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	clause := &models.ISOClause{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := h.clauseRepo.Create(c.UserContext(), clause); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Clause code already exists")
		}
		return response.InternalServerError(c, "Failed to create clause")
	}

	return response.Created(c, "Clause created successfully", clause)
}

// UpdateClause updates a clause (Global admin only)
// @Summary Update clause
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clause ID"
// @Param body body ClauseRequest true "Clause data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clauses/{id} [put]
func (h *CatalogHandler) UpdateClause(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid clause ID")
	}

	var req ClauseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	clause, err := h.clauseRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return response.NotFound(c, "Clause not found")
	}

	clause.Code = req.Code
	clause.Title = req.Title
	clause.Description = req.Description
	if req.IsActive != nil {
		clause.IsActive = *req.IsActive
	}

	if err := h.clauseRepo.Update(c.UserContext(), clause); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Clause code already exists")
		}
		return response.InternalServerError(c, "Failed to update clause")
	}

	return response.Success(c, "Clause updated successfully", clause)
}

// GetClause gets a single clause
// @Summary Get clause
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clause ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clauses/{id} [get]
func (h *CatalogHandler) GetClause(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid clause ID")
	}

	clause, err := h.clauseRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return response.NotFound(c, "Clause not found")
	}

	return response.Success(c, "Clause retrieved successfully", clause)
}

// ListClauses lists the clause catalog
// @Summary List clauses
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clauses [get]
func (h *CatalogHandler) ListClauses(c *fiber.Ctx) error {
	clauses, err := h.clauseRepo.List(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list clauses")
	}

	return response.Success(c, "Clauses retrieved successfully", clauses)
}
