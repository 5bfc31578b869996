package services

import (
	"context"
	"errors"
	"fmt"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"
)

// Message service errors
var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrCrossTenantSend   = errors.New("recipient is outside your school")
	ErrSelfSend          = errors.New("cannot send a message to yourself")
)

// MessageService handles direct messages between principals
type MessageService struct {
	msgRepo       *repositories.MessageRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
}

// NewMessageService creates a new message service
func NewMessageService(msgRepo *repositories.MessageRepository, userRepo repositories.UserRepository, notifyService *NotificationService) *MessageService {
	return &MessageService{
		msgRepo:       msgRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
	}
}

// SendMessageInput represents send message input
type SendMessageInput struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Body        string `json:"body" validate:"required,max=10000"`
}

// Send delivers a message. Tenant principals may only message within their
// own school; exchanges with global admins are allowed in both directions.
func (s *MessageService) Send(ctx context.Context, actor *domain.Scope, input *SendMessageInput) (*models.Message, error) {
	if input.RecipientID == actor.PrincipalID {
		return nil, ErrSelfSend
	}

	recipient, err := s.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil || !recipient.IsActive {
		return nil, ErrRecipientNotFound
	}

	if !actor.Global() && !recipient.Role.IsGlobal() && !actor.OwnsSchool(recipient.SchoolID) {
		return nil, ErrCrossTenantSend
	}

	msg := &models.Message{
		SenderID:    actor.PrincipalID,
		RecipientID: recipient.ID,
		Subject:     input.Subject,
		Body:        input.Body,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifyService.Emit(ctx, recipient.ID, fmt.Sprintf("New message: %s", input.Subject), models.NotifyCategoryMessage)

	return msg, nil
}

// GetByID gets a message the actor sent or received
func (s *MessageService) GetByID(ctx context.Context, actor *domain.Scope, id uint) (*models.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, actor.PrincipalID, id)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// Inbox lists messages received by the actor
func (s *MessageService) Inbox(ctx context.Context, actor *domain.Scope, offset, limit int) ([]*models.Message, int64, error) {
	return s.msgRepo.Inbox(ctx, actor.PrincipalID, offset, limit)
}

// Outbox lists messages sent by the actor
func (s *MessageService) Outbox(ctx context.Context, actor *domain.Scope, offset, limit int) ([]*models.Message, int64, error) {
	return s.msgRepo.Outbox(ctx, actor.PrincipalID, offset, limit)
}

// MarkRead marks a received message read
func (s *MessageService) MarkRead(ctx context.Context, actor *domain.Scope, id uint) error {
	if err := s.msgRepo.MarkRead(ctx, actor.PrincipalID, id); err != nil {
		return ErrMessageNotFound
	}
	return nil
}
