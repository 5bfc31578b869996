package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Club Repository
// ============================================================

// ClubRepository handles club persistence
type ClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create creates a club. Non-global scopes always own what they create;
// only a global scope may create a global (NULL school_id) club.
func (r *ClubRepository) Create(ctx context.Context, scope *domain.Scope, club *models.Club) error {
	if !scope.Global() {
		club.SchoolID = scope.SchoolID
	}
	club.CreatedBy = scope.PrincipalID
	return translate(r.db.WithContext(ctx).Create(club).Error)
}

// GetByID gets a club within the caller's read scope
func (r *ClubRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Club, error) {
	var club models.Club
	err := TenantScoped(r.db.WithContext(ctx).Where("id = ?", id), scope).First(&club).Error
	if err != nil {
		return nil, translate(err)
	}
	return &club, nil
}

// Update applies mutable fields to a club the scope's tenant owns.
// Ownership is re-verified by the scoped WHERE at mutation time.
func (r *ClubRepository) Update(ctx context.Context, scope *domain.Scope, club *models.Club) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Model(&models.Club{}).Where("id = ?", club.ID), scope).
		Select("name", "description", "category", "capacity", "is_open").
		Updates(club)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete soft deletes a club the scope's tenant owns
func (r *ClubRepository) Delete(ctx context.Context, scope *domain.Scope, id uint) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).Delete(&models.Club{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists clubs within the caller's read scope
func (r *ClubRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.Club, int64, error) {
	var clubs []*models.Club
	var total int64

	if err := TenantScoped(r.db.WithContext(ctx).Model(&models.Club{}), scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := TenantScoped(r.db.WithContext(ctx), scope).
		Offset(offset).Limit(limit).Order("id").Find(&clubs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return clubs, total, nil
}

// ============================================================
// Event Repository
// ============================================================

// EventRepository handles event persistence
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates an event
func (r *EventRepository) Create(ctx context.Context, scope *domain.Scope, event *models.Event) error {
	if !scope.Global() {
		event.SchoolID = scope.SchoolID
	}
	event.CreatedBy = scope.PrincipalID
	return translate(r.db.WithContext(ctx).Create(event).Error)
}

// GetByID gets an event within the caller's read scope
func (r *EventRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Event, error) {
	var event models.Event
	err := TenantScoped(r.db.WithContext(ctx).Where("id = ?", id), scope).First(&event).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// Update applies mutable fields to an event the scope's tenant owns
func (r *EventRepository) Update(ctx context.Context, scope *domain.Scope, event *models.Event) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", event.ID), scope).
		Select("title", "description", "location", "starts_at", "ends_at", "is_open").
		Updates(event)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete soft deletes an event the scope's tenant owns
func (r *EventRepository) Delete(ctx context.Context, scope *domain.Scope, id uint) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).Delete(&models.Event{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists events within the caller's read scope
func (r *EventRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	if err := TenantScoped(r.db.WithContext(ctx).Model(&models.Event{}), scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := TenantScoped(r.db.WithContext(ctx), scope).
		Offset(offset).Limit(limit).Order("starts_at").Find(&events).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return events, total, nil
}

// ClosePastEvents marks events whose start time has passed as closed.
// Run by the cron service.
func (r *EventRepository) ClosePastEvents(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("is_open = ? AND starts_at < NOW()", true).
		Update("is_open", false)
	return res.RowsAffected, translate(res.Error)
}

// ============================================================
// Training Repository
// ============================================================

// TrainingRepository handles training persistence
type TrainingRepository struct {
	db *gorm.DB
}

// NewTrainingRepository creates a new training repository
func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// Create creates a training
func (r *TrainingRepository) Create(ctx context.Context, scope *domain.Scope, training *models.Training) error {
	if !scope.Global() {
		training.SchoolID = scope.SchoolID
	}
	training.CreatedBy = scope.PrincipalID
	return translate(r.db.WithContext(ctx).Create(training).Error)
}

// GetByID gets a training within the caller's read scope
func (r *TrainingRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Training, error) {
	var training models.Training
	err := TenantScoped(r.db.WithContext(ctx).Where("id = ?", id), scope).First(&training).Error
	if err != nil {
		return nil, translate(err)
	}
	return &training, nil
}

// Update applies mutable fields to a training the scope's tenant owns
func (r *TrainingRepository) Update(ctx context.Context, scope *domain.Scope, training *models.Training) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Model(&models.Training{}).Where("id = ?", training.ID), scope).
		Select("title", "description", "provider", "seats", "starts_at", "is_open").
		Updates(training)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete soft deletes a training the scope's tenant owns
func (r *TrainingRepository) Delete(ctx context.Context, scope *domain.Scope, id uint) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).Delete(&models.Training{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists trainings within the caller's read scope
func (r *TrainingRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.Training, int64, error) {
	var trainings []*models.Training
	var total int64

	if err := TenantScoped(r.db.WithContext(ctx).Model(&models.Training{}), scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := TenantScoped(r.db.WithContext(ctx), scope).
		Offset(offset).Limit(limit).Order("starts_at").Find(&trainings).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return trainings, total, nil
}

// ============================================================
// ISO Clause Repository (master data, global only)
// ============================================================

// ClauseRepository handles ISO clause persistence
type ClauseRepository struct {
	db *gorm.DB
}

// NewClauseRepository creates a new clause repository
func NewClauseRepository(db *gorm.DB) *ClauseRepository {
	return &ClauseRepository{db: db}
}

// Create creates a clause (global-admin only, enforced by the route)
func (r *ClauseRepository) Create(ctx context.Context, clause *models.ISOClause) error {
	return translate(r.db.WithContext(ctx).Create(clause).Error)
}

// GetByID gets a clause by ID
func (r *ClauseRepository) GetByID(ctx context.Context, id uint) (*models.ISOClause, error) {
	var clause models.ISOClause
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&clause).Error
	if err != nil {
		return nil, translate(err)
	}
	return &clause, nil
}

// GetByCode gets a clause by its unique code
func (r *ClauseRepository) GetByCode(ctx context.Context, code string) (*models.ISOClause, error) {
	var clause models.ISOClause
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&clause).Error
	if err != nil {
		return nil, translate(err)
	}
	return &clause, nil
}

// Update updates a clause
func (r *ClauseRepository) Update(ctx context.Context, clause *models.ISOClause) error {
	return translate(r.db.WithContext(ctx).Save(clause).Error)
}

// Delete soft deletes a clause
func (r *ClauseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ISOClause{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists active clauses
func (r *ClauseRepository) List(ctx context.Context) ([]*models.ISOClause, error) {
	var clauses []*models.ISOClause
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&clauses).Error
	if err != nil {
		return nil, translate(err)
	}
	return clauses, nil
}

// Count counts active clauses
func (r *ClauseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ISOClause{}).Where("is_active = ?", true).Count(&count).Error
	return count, translate(err)
}
