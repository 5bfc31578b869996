package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.User, int64, error)
	ListAdminsBySchool(ctx context.Context, schoolID uint) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RegistrationRepository defines registration repository interface.
// Create and Update take the evidence document ids so the registration row
// and its evidence links commit or roll back together.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration, documentIDs []uint) error
	GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Registration, error)
	GetByResource(ctx context.Context, schoolID uint, kind domain.ResourceKind, resourceID uint) (*models.Registration, error)
	Update(ctx context.Context, reg *models.Registration, documentIDs []uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, scope *domain.Scope, status *domain.RegistrationStatus, offset, limit int) ([]*models.Registration, int64, error)
	CountByStatus(ctx context.Context, scope *domain.Scope, status domain.RegistrationStatus) (int64, error)
}

// Catalog readers cover the single lookup the workflow service needs per
// resource kind. The concrete repositories satisfy them.
type ClubReader interface {
	GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Club, error)
}

// EventReader reads events within a scope
type EventReader interface {
	GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Event, error)
}

// TrainingReader reads trainings within a scope
type TrainingReader interface {
	GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Training, error)
}

// ClauseReader reads the global clause master list
type ClauseReader interface {
	GetByID(ctx context.Context, id uint) (*models.ISOClause, error)
}

// DocumentReader resolves evidence document ownership
type DocumentReader interface {
	GetOwnedByIDs(ctx context.Context, scope *domain.Scope, ids []uint) ([]*models.Document, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListUnread(ctx context.Context, userID uint) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// PointRepository defines point ledger repository interface
type PointRepository interface {
	Create(ctx context.Context, entry *models.PointEntry) error
	TotalForUser(ctx context.Context, userID uint) (int64, error)
	Leaderboard(ctx context.Context, schoolID uint, limit int) ([]*LeaderboardRow, error)
}

// LeaderboardRow is one aggregated leaderboard entry.
type LeaderboardRow struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Total    int64  `json:"total"`
}
