package repositories

import (
	"context"
	"errors"
	"testing"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

// newTestDB opens a gorm session over a sqlmock connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

// buildSQL renders the statement a scoped query would run without executing it.
func buildSQL(db *gorm.DB, scope *domain.Scope, scoper func(*gorm.DB, *domain.Scope) *gorm.DB) string {
	var clubs []*models.Club
	tx := scoper(db.Session(&gorm.Session{DryRun: true}).Model(&models.Club{}), scope).Find(&clubs)
	return tx.Statement.SQL.String()
}

func TestTenantScoped_TenantSeesOwnAndSharedRows(t *testing.T) {
	db, _ := newTestDB(t)

	scope := &domain.Scope{PrincipalID: 2, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(7)}
	sql := buildSQL(db, scope, TenantScoped)

	assert.Contains(t, sql, "school_id = ? OR school_id IS NULL")
}

func TestTenantScoped_GlobalSeesEverything(t *testing.T) {
	db, _ := newTestDB(t)

	scope := &domain.Scope{PrincipalID: 1, Role: domain.RoleGlobalAdmin}
	sql := buildSQL(db, scope, TenantScoped)

	assert.NotContains(t, sql, "school_id")
}

func TestTenantScoped_DetachedTenantSeesOnlySharedRows(t *testing.T) {
	db, _ := newTestDB(t)

	scope := &domain.Scope{PrincipalID: 3, Role: domain.RoleCoordinator}
	sql := buildSQL(db, scope, TenantScoped)

	assert.Contains(t, sql, "school_id IS NULL")
	assert.NotContains(t, sql, "school_id = ?")
}

func TestOwnedByTenant_ExcludesSharedRows(t *testing.T) {
	db, _ := newTestDB(t)

	scope := &domain.Scope{PrincipalID: 2, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(7)}
	sql := buildSQL(db, scope, OwnedByTenant)

	assert.Contains(t, sql, "school_id = ?")
	assert.NotContains(t, sql, "school_id IS NULL")
}

func TestOwnedByTenant_DetachedTenantMatchesNothing(t *testing.T) {
	db, _ := newTestDB(t)

	scope := &domain.Scope{PrincipalID: 3, Role: domain.RoleCoordinator}
	sql := buildSQL(db, scope, OwnedByTenant)

	assert.Contains(t, sql, "1 = 0")
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1062}), domain.ErrDuplicateEntry)

	// other driver errors pass through untouched
	other := &mysql.MySQLError{Number: 1213}
	assert.Equal(t, error(other), translate(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, translate(plain))
}

func TestRegistrationCreate_DuplicateSlotIsConflict(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRegistrationRepository(db)

	mock.ExpectExec("INSERT INTO `registrations`").
		WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), &models.Registration{
		SchoolID:     7,
		ResourceKind: domain.KindClub,
		ResourceID:   3,
		Status:       domain.StatusPending,
	}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationCreate_EvidenceSharesTheTransaction(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `registrations`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `registration_evidences`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `registration_evidences`").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Registration{
		SchoolID:     7,
		ResourceKind: domain.KindClub,
		ResourceID:   3,
		Status:       domain.StatusSubmitted,
	}, []uint{4, 5})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationCreate_FailedEvidenceRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `registrations`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `registration_evidences`").WillReturnError(errors.New("link failed"))
	mock.ExpectRollback()

	// the registration insert must not survive a failed evidence link
	err := repo.Create(context.Background(), &models.Registration{
		SchoolID:     7,
		ResourceKind: domain.KindClub,
		ResourceID:   3,
		Status:       domain.StatusSubmitted,
	}, []uint{4})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClauseGetByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewClauseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "title", "is_active"}).
		AddRow(2, "7.1.4", "Environment for the operation of educational processes", true)
	mock.ExpectQuery("SELECT (.+) FROM `iso_clauses`").WillReturnRows(rows)

	clause, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "7.1.4", clause.Code)

	mock.ExpectQuery("SELECT (.+) FROM `iso_clauses`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkRead_OtherUsersRowIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE `notifications`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), 42, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSetActive_MissingRowIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
