package repositories

import (
	"errors"

	"schoolhub-erp/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the driver error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// TenantScoped injects the tenant visibility filter: non-global scopes see
// rows owned by their school plus global (NULL school_id) rows. This is the
// single place the read-scope invariant lives; handlers never build it.
func TenantScoped(db *gorm.DB, scope *domain.Scope) *gorm.DB {
	if scope.Global() {
		return db
	}
	if scope.SchoolID == nil {
		return db.Where("school_id IS NULL")
	}
	return db.Where("school_id = ? OR school_id IS NULL", *scope.SchoolID)
}

// OwnedByTenant restricts to rows the scope's tenant owns outright, excluding
// global rows. Used for mutations and for always-tenant-owned kinds (students).
func OwnedByTenant(db *gorm.DB, scope *domain.Scope) *gorm.DB {
	if scope.Global() {
		return db
	}
	if scope.SchoolID == nil {
		// tenant role without a tenant: matches nothing
		return db.Where("1 = 0")
	}
	return db.Where("school_id = ?", *scope.SchoolID)
}

// translate maps store-level failures onto the domain taxonomy. A row outside
// the caller's tenant scope surfaces as the same ErrNotFound as an absent row.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return domain.ErrDuplicateEntry
	}
	return err
}
