package services

import (
	"context"
	"log"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
)

// GamificationService maintains the append-only point ledger. Awards are
// best-effort side effects of workflow transitions: a failed insert is
// logged, never propagated.
type GamificationService struct {
	pointRepo repositories.PointRepository
}

// NewGamificationService creates a new gamification service
func NewGamificationService(pointRepo repositories.PointRepository) *GamificationService {
	return &GamificationService{pointRepo: pointRepo}
}

// Award records a point-earning action for a principal. Fire-and-forget.
func (s *GamificationService) Award(ctx context.Context, userID uint, schoolID *uint, action string) {
	points := models.PointsFor(action)
	if points == 0 {
		return
	}

	entry := &models.PointEntry{
		UserID:   userID,
		SchoolID: schoolID,
		Action:   action,
		Points:   points,
	}
	if err := s.pointRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to award %s points to user %d: %v", action, userID, err)
	}
}

// MyPoints returns a principal's point total
func (s *GamificationService) MyPoints(ctx context.Context, userID uint) (int64, error) {
	return s.pointRepo.TotalForUser(ctx, userID)
}

// Leaderboard returns the top point earners of a school
func (s *GamificationService) Leaderboard(ctx context.Context, schoolID uint, limit int) ([]*repositories.LeaderboardRow, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.pointRepo.Leaderboard(ctx, schoolID, limit)
}
