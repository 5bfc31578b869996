package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolhub-erp/internal/core/domain"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Global Admin Dashboard
// ============================================================

// GlobalDashboardData represents the platform-wide dashboard
type GlobalDashboardData struct {
	// Tenant Statistics
	TotalSchools int64 `json:"total_schools"`
	TotalUsers   int64 `json:"total_users"`
	ActiveUsers  int64 `json:"active_users"`

	// Registration Statistics
	TotalRegistrations    int64 `json:"total_registrations"`
	PendingRegistrations  int64 `json:"pending_registrations"`
	SubmittedReviewQueue  int64 `json:"submitted_review_queue"`
	ApprovedRegistrations int64 `json:"approved_registrations"`
	RejectedRegistrations int64 `json:"rejected_registrations"`

	// Monthly Statistics
	RegistrationsThisMonth int64 `json:"registrations_this_month"`

	// Recent Activity
	RecentRegistrations []RegistrationSummary `json:"recent_registrations"`

	// Most Active Schools
	TopSchools []SchoolStats `json:"top_schools"`
}

// RegistrationSummary represents registration summary
type RegistrationSummary struct {
	ID           uint      `json:"id"`
	SchoolID     uint      `json:"school_id"`
	SchoolName   string    `json:"school_name"`
	ResourceKind string    `json:"resource_kind"`
	ResourceID   uint      `json:"resource_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SchoolStats represents school activity statistics
type SchoolStats struct {
	SchoolID   uint   `json:"school_id"`
	SchoolName string `json:"school_name"`
	Total      int64  `json:"total"`
	Approved   int64  `json:"approved"`
	Pending    int64  `json:"pending"`
}

// GetGlobalDashboard returns the platform-wide dashboard data
func (s *DashboardService) GetGlobalDashboard(ctx context.Context) (*GlobalDashboardData, error) {
	data := &GlobalDashboardData{}

	s.db.WithContext(ctx).Table("schools").Where("deleted_at IS NULL").Count(&data.TotalSchools)
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("is_active = ? AND deleted_at IS NULL", true).Count(&data.ActiveUsers)

	// Registration counts by status
	s.db.WithContext(ctx).Table("registrations").Count(&data.TotalRegistrations)
	s.db.WithContext(ctx).Table("registrations").Where("status = ?", domain.StatusPending).Count(&data.PendingRegistrations)
	s.db.WithContext(ctx).Table("registrations").Where("status = ?", domain.StatusSubmitted).Count(&data.SubmittedReviewQueue)
	s.db.WithContext(ctx).Table("registrations").Where("status = ?", domain.StatusApproved).Count(&data.ApprovedRegistrations)
	s.db.WithContext(ctx).Table("registrations").Where("status = ?", domain.StatusRejected).Count(&data.RejectedRegistrations)

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("registrations").
		Where("created_at >= ?", startOfMonth).
		Count(&data.RegistrationsThisMonth)

	// Recent registrations
	s.db.WithContext(ctx).Table("registrations").
		Joins("JOIN schools ON schools.id = registrations.school_id").
		Select("registrations.id, registrations.school_id, schools.name AS school_name, registrations.resource_kind, registrations.resource_id, registrations.status, registrations.created_at").
		Order("registrations.created_at DESC").
		Limit(10).
		Scan(&data.RecentRegistrations)

	// Most active schools
	s.db.WithContext(ctx).Table("registrations").
		Joins("JOIN schools ON schools.id = registrations.school_id").
		Select(`registrations.school_id,
			schools.name AS school_name,
			COUNT(*) AS total,
			SUM(CASE WHEN registrations.status = 'APPROVED' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN registrations.status IN ('PENDING', 'SUBMITTED') THEN 1 ELSE 0 END) AS pending`).
		Group("registrations.school_id, schools.name").
		Order("total DESC").
		Limit(5).
		Scan(&data.TopSchools)

	return data, nil
}

// ============================================================
// School Dashboard
// ============================================================

// SchoolDashboardData represents a single tenant's dashboard
type SchoolDashboardData struct {
	// Membership
	TotalUsers    int64 `json:"total_users"`
	TotalStudents int64 `json:"total_students"`

	// Registration Statistics
	TotalRegistrations    int64 `json:"total_registrations"`
	PendingRegistrations  int64 `json:"pending_registrations"`
	SubmittedAwaiting     int64 `json:"submitted_awaiting"`
	ApprovedRegistrations int64 `json:"approved_registrations"`
	RejectedRegistrations int64 `json:"rejected_registrations"`

	// Catalog visible to the school
	OpenClubs     int64 `json:"open_clubs"`
	OpenEvents    int64 `json:"open_events"`
	OpenTrainings int64 `json:"open_trainings"`

	// Recent Activity
	RecentRegistrations []RegistrationSummary `json:"recent_registrations"`
}

// GetSchoolDashboard returns one school's dashboard data
func (s *DashboardService) GetSchoolDashboard(ctx context.Context, schoolID uint) (*SchoolDashboardData, error) {
	data := &SchoolDashboardData{}

	s.db.WithContext(ctx).Table("users").
		Where("school_id = ? AND deleted_at IS NULL", schoolID).
		Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("students").
		Where("school_id = ? AND deleted_at IS NULL", schoolID).
		Count(&data.TotalStudents)

	regs := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("registrations").Where("school_id = ?", schoolID)
	}
	regs().Count(&data.TotalRegistrations)
	regs().Where("status = ?", domain.StatusPending).Count(&data.PendingRegistrations)
	regs().Where("status = ?", domain.StatusSubmitted).Count(&data.SubmittedAwaiting)
	regs().Where("status = ?", domain.StatusApproved).Count(&data.ApprovedRegistrations)
	regs().Where("status = ?", domain.StatusRejected).Count(&data.RejectedRegistrations)

	// Catalog counts follow the read rule: own rows plus shared NULL rows
	tenantVisible := "(school_id = ? OR school_id IS NULL) AND deleted_at IS NULL"
	s.db.WithContext(ctx).Table("clubs").
		Where(tenantVisible, schoolID).
		Where("is_open = ?", true).
		Count(&data.OpenClubs)
	s.db.WithContext(ctx).Table("events").
		Where(tenantVisible, schoolID).
		Where("is_open = ? AND starts_at > ?", true, time.Now()).
		Count(&data.OpenEvents)
	s.db.WithContext(ctx).Table("trainings").
		Where(tenantVisible, schoolID).
		Where("is_open = ? AND starts_at > ?", true, time.Now()).
		Count(&data.OpenTrainings)

	s.db.WithContext(ctx).Table("registrations").
		Joins("JOIN schools ON schools.id = registrations.school_id").
		Where("registrations.school_id = ?", schoolID).
		Select("registrations.id, registrations.school_id, schools.name AS school_name, registrations.resource_kind, registrations.resource_id, registrations.status, registrations.created_at").
		Order("registrations.created_at DESC").
		Limit(10).
		Scan(&data.RecentRegistrations)

	return data, nil
}
