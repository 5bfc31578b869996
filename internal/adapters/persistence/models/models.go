package models

import (
	"time"

	"schoolhub-erp/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Tenancy
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      domain.Role    `gorm:"size:20;not null;default:'COORDINATOR'" json:"role"`
	SchoolID  *uint          `gorm:"index" json:"school_id"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Scope builds the access scope for this user's current state.
func (u *User) Scope() *domain.Scope {
	return &domain.Scope{
		PrincipalID: u.ID,
		Role:        u.Role,
		SchoolID:    u.SchoolID,
	}
}

// UserResponse DTO
type UserResponse struct {
	ID         uint        `json:"id"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Role       domain.Role `json:"role"`
	SchoolID   *uint       `json:"school_id"`
	SchoolName string      `json:"school_name,omitempty"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		SchoolID:  u.SchoolID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.School != nil {
		resp.SchoolName = u.School.Name
	}
	return resp
}

// School represents schools table (the tenant)
type School struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:30" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (School) TableName() string {
	return "schools"
}

// ============================================================
// Tenant-Scoped Resource Catalog
// ============================================================

// Club represents clubs table. A NULL school_id marks a global club every
// tenant may register for.
type Club struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SchoolID    *uint          `gorm:"index" json:"school_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50" json:"category"`
	Capacity    int            `gorm:"default:0" json:"capacity"`
	IsOpen      bool           `gorm:"default:true" json:"is_open"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Club) TableName() string {
	return "clubs"
}

// Event represents events table
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SchoolID    *uint          `gorm:"index" json:"school_id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:200" json:"location"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at"`
	IsOpen      bool           `gorm:"default:true" json:"is_open"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// OpenForRegistration reports whether the event still accepts registrations.
func (e *Event) OpenForRegistration(now time.Time) bool {
	return e.IsOpen && now.Before(e.StartsAt)
}

// Training represents trainings table
type Training struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SchoolID    *uint          `gorm:"index" json:"school_id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Provider    string         `gorm:"size:100" json:"provider"`
	Seats       int            `gorm:"default:0" json:"seats"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	IsOpen      bool           `gorm:"default:true" json:"is_open"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Training) TableName() string {
	return "trainings"
}

// ISOClause represents iso_clauses table (Master).
// Clauses are always global: every tenant submits evidence against the same list.
type ISOClause struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ISOClause) TableName() string {
	return "iso_clauses"
}

// Student represents students table. Always tenant-owned.
type Student struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SchoolID      uint           `gorm:"not null;index" json:"school_id"`
	FirstName     string         `gorm:"size:80;not null" json:"first_name"`
	LastName      string         `gorm:"size:80;not null" json:"last_name"`
	Grade         string         `gorm:"size:20" json:"grade"`
	Email         string         `gorm:"size:100" json:"email"`
	GuardianPhone string         `gorm:"size:30" json:"guardian_phone"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

// Document represents documents table (upload metadata)
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SchoolID     *uint          `gorm:"index" json:"school_id"`
	OriginalName string         `gorm:"size:255;not null" json:"original_name"`
	StoredName   string         `gorm:"size:100;uniqueIndex;not null" json:"stored_name"`
	MimeType     string         `gorm:"size:100;not null" json:"mime_type"`
	SizeBytes    int64          `gorm:"not null" json:"size_bytes"`
	UploadedBy   uint           `gorm:"not null" json:"uploaded_by"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// ============================================================
// Registration / Submission Workflow
// ============================================================

// Registration represents registrations table: a tenant's request against a
// shared resource and its approval lifecycle. The composite unique index is
// what turns a concurrent duplicate register into a driver-level conflict.
// No soft delete: a deleted row must free its unique slot.
type Registration struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	SchoolID     uint                      `gorm:"not null;uniqueIndex:idx_reg_school_resource" json:"school_id"`
	ResourceKind domain.ResourceKind       `gorm:"size:20;not null;uniqueIndex:idx_reg_school_resource" json:"resource_kind"`
	ResourceID   uint                      `gorm:"not null;uniqueIndex:idx_reg_school_resource" json:"resource_id"`
	Status       domain.RegistrationStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	SubmittedBy  *uint                     `json:"submitted_by"`
	SubmittedAt  *time.Time                `json:"submitted_at"`
	ReviewedBy   *uint                     `json:"reviewed_by"`
	ReviewedAt   *time.Time                `json:"reviewed_at"`
	Comments     string                    `gorm:"type:text" json:"comments"`
	CreatedAt    time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`

	School   *School                `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Evidence []RegistrationEvidence `gorm:"foreignKey:RegistrationID" json:"evidence,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}

// RegistrationEvidence links a registration to an uploaded document
type RegistrationEvidence struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RegistrationID uint      `gorm:"not null;index" json:"registration_id"`
	DocumentID     uint      `gorm:"not null" json:"document_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Document *Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

func (RegistrationEvidence) TableName() string {
	return "registration_evidences"
}

// ============================================================
// Side Channels
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Message   string     `gorm:"size:500;not null" json:"message"`
	Category  string     `gorm:"size:50" json:"category"`
	IsRead    bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification categories
const (
	NotifyCategoryWorkflow = "workflow"
	NotifyCategoryMessage  = "message"
	NotifyCategorySystem   = "system"
)

// Message represents messages table (principal-to-principal)
type Message struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SenderID    uint           `gorm:"not null;index" json:"sender_id"`
	RecipientID uint           `gorm:"not null;index" json:"recipient_id"`
	Subject     string         `gorm:"size:200;not null" json:"subject"`
	Body        string         `gorm:"type:text" json:"body"`
	IsRead      bool           `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// PointEntry represents point_entries table (append-only gamification ledger)
type PointEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SchoolID  *uint     `gorm:"index" json:"school_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PointEntry) TableName() string {
	return "point_entries"
}

// Point actions and their fixed awards
const (
	PointActionRegister = "REGISTER"
	PointActionSubmit   = "SUBMIT"
	PointActionApproved = "APPROVED"
)

// PointsFor returns the fixed award for a point action.
func PointsFor(action string) int {
	switch action {
	case PointActionRegister:
		return 10
	case PointActionSubmit:
		return 20
	case PointActionApproved:
		return 50
	}
	return 0
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity & tenancy
		&School{},
		&User{},
		// Resource catalog
		&Club{},
		&Event{},
		&Training{},
		&ISOClause{},
		&Student{},
		&Document{},
		// Workflow
		&Registration{},
		&RegistrationEvidence{},
		// Side channels
		&Notification{},
		&Message{},
		&PointEntry{},
	)
}
