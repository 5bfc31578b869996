package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("School").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("School").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

// SetActive flips the active flag without touching other fields
func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists users visible to the scope with pagination.
// Non-global scopes only see principals of their own school.
func (r *userRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	q := OwnedByTenant(r.db.WithContext(ctx).Model(&models.User{}), scope)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q = OwnedByTenant(r.db.WithContext(ctx).Preload("School"), scope)
	if err := q.Offset(offset).Limit(limit).Order("id").Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}

	return users, total, nil
}

// ListAdminsBySchool returns the active tenant admins of a school.
// Used to target workflow notifications.
func (r *userRepository) ListAdminsBySchool(ctx context.Context, schoolID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND role = ? AND is_active = ?", schoolID, domain.RoleTenantAdmin, true).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, translate(err)
}
