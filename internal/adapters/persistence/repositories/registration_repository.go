package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// registrationRepository implements RegistrationRepository
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts a registration together with its evidence links.
// Concurrent duplicates for the same (school, kind, resource) race on the
// unique index; the loser gets domain.ErrDuplicateEntry from the driver,
// never a second row. Evidence rides the same transaction, so a failed
// link rolls the registration back instead of leaving a submitted row
// with no stored evidence.
func (r *registrationRepository) Create(ctx context.Context, reg *models.Registration, documentIDs []uint) error {
	if len(documentIDs) == 0 {
		return translate(r.db.WithContext(ctx).Create(reg).Error)
	}
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		return attachEvidence(tx, reg.ID, documentIDs)
	}))
}

// GetByID gets a registration visible to the scope
func (r *registrationRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Registration, error) {
	var reg models.Registration
	q := r.db.WithContext(ctx).Preload("Evidence").Preload("Evidence.Document").Where("id = ?", id)
	if !scope.Global() {
		if scope.SchoolID == nil {
			return nil, domain.ErrNotFound
		}
		q = q.Where("school_id = ?", *scope.SchoolID)
	}
	if err := q.First(&reg).Error; err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

// GetByResource gets a school's registration for a resource, if any
func (r *registrationRepository) GetByResource(ctx context.Context, schoolID uint, kind domain.ResourceKind, resourceID uint) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND resource_kind = ? AND resource_id = ?", schoolID, kind, resourceID).
		First(&reg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

// Update saves a registration, attaching evidence links in the same
// transaction when document ids are given.
func (r *registrationRepository) Update(ctx context.Context, reg *models.Registration, documentIDs []uint) error {
	if len(documentIDs) == 0 {
		return translate(r.db.WithContext(ctx).Save(reg).Error)
	}
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(reg).Error; err != nil {
			return err
		}
		return attachEvidence(tx, reg.ID, documentIDs)
	}))
}

// Delete hard deletes a registration, freeing its unique slot
func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Registration{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists registrations visible to the scope, optionally by status
func (r *registrationRepository) List(ctx context.Context, scope *domain.Scope, status *domain.RegistrationStatus, offset, limit int) ([]*models.Registration, int64, error) {
	var regs []*models.Registration
	var total int64

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Registration{})
		if !scope.Global() {
			if scope.SchoolID == nil {
				return q.Where("1 = 0")
			}
			q = q.Where("school_id = ?", *scope.SchoolID)
		}
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := base().Preload("School").Preload("Evidence").
		Offset(offset).Limit(limit).Order("updated_at DESC").Find(&regs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return regs, total, nil
}

// attachEvidence links uploaded documents to a registration inside the
// caller's transaction.
func attachEvidence(tx *gorm.DB, registrationID uint, documentIDs []uint) error {
	for _, docID := range documentIDs {
		link := &models.RegistrationEvidence{
			RegistrationID: registrationID,
			DocumentID:     docID,
		}
		if err := tx.Create(link).Error; err != nil {
			return err
		}
	}
	return nil
}

// CountByStatus counts registrations in a status within the scope
func (r *registrationRepository) CountByStatus(ctx context.Context, scope *domain.Scope, status domain.RegistrationStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Registration{}).Where("status = ?", status)
	if !scope.Global() {
		if scope.SchoolID == nil {
			return 0, nil
		}
		q = q.Where("school_id = ?", *scope.SchoolID)
	}
	err := q.Count(&count).Error
	return count, translate(err)
}
