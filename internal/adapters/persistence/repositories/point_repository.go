package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// pointRepository implements PointRepository
type pointRepository struct {
	db *gorm.DB
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

// Create appends a ledger entry
func (r *pointRepository) Create(ctx context.Context, entry *models.PointEntry) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

// TotalForUser sums a principal's points
func (r *pointRepository) TotalForUser(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.PointEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, translate(err)
}

// Leaderboard returns the top point earners of a school
func (r *pointRepository) Leaderboard(ctx context.Context, schoolID uint, limit int) ([]*LeaderboardRow, error) {
	var rows []*LeaderboardRow
	err := r.db.WithContext(ctx).Model(&models.PointEntry{}).
		Select("point_entries.user_id, users.full_name, COALESCE(SUM(point_entries.points), 0) AS total").
		Joins("JOIN users ON users.id = point_entries.user_id").
		Where("point_entries.school_id = ?", schoolID).
		Group("point_entries.user_id, users.full_name").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
