package repositories

import (
	"context"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// DocumentRepository handles upload metadata persistence
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create records upload metadata. Non-global uploaders own the row.
func (r *DocumentRepository) Create(ctx context.Context, scope *domain.Scope, doc *models.Document) error {
	if !scope.Global() {
		doc.SchoolID = scope.SchoolID
	}
	doc.UploadedBy = scope.PrincipalID
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

// GetByID gets a document within the caller's read scope
func (r *DocumentRepository) GetByID(ctx context.Context, scope *domain.Scope, id uint) (*models.Document, error) {
	var doc models.Document
	err := TenantScoped(r.db.WithContext(ctx).Where("id = ?", id), scope).First(&doc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

// GetOwnedByIDs loads documents the scope's tenant owns, keyed for evidence
// attachment. Ids outside the tenant scope simply do not come back.
func (r *DocumentRepository) GetOwnedByIDs(ctx context.Context, scope *domain.Scope, ids []uint) ([]*models.Document, error) {
	var docs []*models.Document
	err := OwnedByTenant(r.db.WithContext(ctx).Where("id IN ?", ids), scope).Find(&docs).Error
	if err != nil {
		return nil, translate(err)
	}
	return docs, nil
}

// Delete soft deletes a document the scope's tenant owns
func (r *DocumentRepository) Delete(ctx context.Context, scope *domain.Scope, id uint) error {
	res := OwnedByTenant(r.db.WithContext(ctx).Where("id = ?", id), scope).Delete(&models.Document{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists documents within the caller's read scope
func (r *DocumentRepository) List(ctx context.Context, scope *domain.Scope, offset, limit int) ([]*models.Document, int64, error) {
	var docs []*models.Document
	var total int64

	if err := TenantScoped(r.db.WithContext(ctx).Model(&models.Document{}), scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := TenantScoped(r.db.WithContext(ctx), scope).
		Offset(offset).Limit(limit).Order("id DESC").Find(&docs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return docs, total, nil
}
