package services

import (
	"context"
	"log"
	"time"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
)

// notificationTTL is how long a notification stays before the purge job
// collects it.
const notificationTTL = 30 * 24 * time.Hour

// NotificationService records user-facing alerts. Emission is best-effort:
// a failed insert is logged and never surfaces to the triggering operation.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Emit records a notification for a principal. Fire-and-forget.
func (s *NotificationService) Emit(ctx context.Context, userID uint, message, category string) {
	expires := time.Now().Add(notificationTTL)
	n := &models.Notification{
		UserID:    userID,
		Message:   message,
		Category:  category,
		ExpiresAt: &expires,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to record notification for user %d: %v", userID, err)
	}
}

// ListUnread lists a principal's unread notifications
func (s *NotificationService) ListUnread(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

// MarkRead marks one of the principal's own notifications read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

// CountUnread counts a principal's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// PurgeExpired removes notifications past their expiry. Run by the cron service.
func (s *NotificationService) PurgeExpired(ctx context.Context) {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("⚠️ Notification purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🧹 Purged %d expired notifications", n)
	}
}
