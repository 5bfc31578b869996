package handlers

import (
	"errors"

	"schoolhub-erp/internal/core/services"
	"schoolhub-erp/internal/pkg/pagination"
	"schoolhub-erp/internal/pkg/response"
	"schoolhub-erp/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles direct message endpoints
type MessageHandler struct {
	msgService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(msgService *services.MessageService) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

// Send handles sending a message
// @Summary Send message
// @Description Send a direct message to another principal in the caller's school or a global admin
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SendMessageInput true "Message data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	msg, err := h.msgService.Send(c.UserContext(), scope, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfSend):
			return response.BadRequest(c, "You cannot message yourself")
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrCrossTenantSend):
			return response.Forbidden(c, "Recipient is outside your school")
		default:
			return response.InternalServerError(c, "Failed to send message")
		}
	}

	return response.Created(c, "Message sent successfully", msg)
}

// Get handles fetching a single message
// @Summary Get message
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages/{id} [get]
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	msg, err := h.msgService.GetByID(c.UserContext(), scope, id)
	if err != nil {
		return response.NotFound(c, "Message not found")
	}

	return response.Success(c, "Message retrieved successfully", msg)
}

// Inbox lists messages received by the caller
// @Summary Inbox
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /messages/inbox [get]
func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	msgs, total, err := h.msgService.Inbox(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Inbox retrieved successfully", pagination.NewResponse(msgs, params, total))
}

// Outbox lists messages sent by the caller
// @Summary Outbox
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /messages/outbox [get]
func (h *MessageHandler) Outbox(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	msgs, total, err := h.msgService.Outbox(c.UserContext(), scope, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Outbox retrieved successfully", pagination.NewResponse(msgs, params, total))
}

// MarkRead marks a received message read
// @Summary Mark message read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	if err := h.msgService.MarkRead(c.UserContext(), scope, id); err != nil {
		return response.NotFound(c, "Message not found")
	}

	return response.Success(c, "Message marked read", nil)
}
