package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// MessageRepository handles message persistence
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a message
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error)
}

// GetByID gets a message either side of which is the given principal
func (r *MessageRepository) GetByID(ctx context.Context, userID, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").
		Where("id = ? AND (sender_id = ? OR recipient_id = ?)", id, userID, userID).
		First(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

// Inbox lists messages received by the principal
func (r *MessageRepository) Inbox(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	return r.list(ctx, "recipient_id", userID, offset, limit)
}

// Outbox lists messages sent by the principal
func (r *MessageRepository) Outbox(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	return r.list(ctx, "sender_id", userID, offset, limit)
}

func (r *MessageRepository) list(ctx context.Context, column string, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	var msgs []*models.Message
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Message{}).Where(column+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").
		Where(column+" = ?", userID).
		Offset(offset).Limit(limit).Order("created_at DESC").Find(&msgs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return msgs, total, nil
}

// MarkRead marks a received message read; only the recipient may do so
func (r *MessageRepository) MarkRead(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
