package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// StudentRepository handles student persistence. Students are always
// tenant-owned, so every query uses the owned-by-tenant filter.
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create creates a student under the scope's own school.
// A global scope must supply the school id on the model.
func (r *StudentRepository) Create(ctx context.Context, scope *domain.Scope, student *models.Student) error {
	if !scope.Global() {
		if scope.SchoolID == nil {
			return domain.ErrForbidden
		}
		student.SchoolID = *scope.SchoolID
	}
	return translate(r.db.WithContext(ctx).Create(student).Error)
}

// GetByID gets a student the scope's tenant owns
func (r *StudentRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Student, error) {
	var student models.Student
	err := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).First(&student).Error
	if err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

// Update applies mutable fields to a student the scope's tenant owns
func (r *StudentRepository) Update(ctx context.Context, scope *domain.Scope, student *models.Student) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", student.ID), scope).
		Select("first_name", "last_name", "grade", "email", "guardian_phone").
		Updates(student)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete soft deletes a student the scope's tenant owns
func (r *StudentRepository) Delete(ctx context.Context, scope *domain.Scope, id uint) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).Delete(&models.Student{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists students the scope's tenant owns
func (r *StudentRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	if err := OwnedByTenant(r.db.WithContext(ctx).Model(&models.Student{}), scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := OwnedByTenant(r.db.WithContext(ctx), scope).
		Offset(offset).Limit(limit).Order("last_name, first_name").Find(&students).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return students, total, nil
}
