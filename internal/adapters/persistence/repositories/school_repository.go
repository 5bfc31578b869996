package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SchoolRepository handles school (tenant) persistence
type SchoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// Create creates a new school
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	return translate(r.db.WithContext(ctx).Create(school).Error)
}

// GetByID gets a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&school).Error
	if err != nil {
		return nil, translate(err)
	}
	return &school, nil
}

// GetByCode gets a school by its unique code
func (r *SchoolRepository) GetByCode(ctx context.Context, code string) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&school).Error
	if err != nil {
		return nil, translate(err)
	}
	return &school, nil
}

// Update updates a school
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	return translate(r.db.WithContext(ctx).Save(school).Error)
}

// Delete soft deletes a school
func (r *SchoolRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&models.School{}, id).Error)
}

// List lists schools with pagination
func (r *SchoolRepository) List(ctx context.Context, offset, limit int) ([]*models.School, int64, error) {
	var schools []*models.School
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.School{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&schools).Error; err != nil {
		return nil, 0, translate(err)
	}

	return schools, total, nil
}
