package config

import (
	"log"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedGlobalAdmin(); err != nil {
		log.Printf("⚠️ Global admin seeder skipped: %v", err)
	}
	if err := s.seedISOClauses(); err != nil {
		log.Printf("⚠️ ISO clause seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedGlobalAdmin seeds the default global admin
// This is for development/testing only
// In production, create the admin through a secure process
func (s *Seeder) seedGlobalAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleGlobalAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@schoolhub.io",
		FullName: "System Administrator",
		Password: hashedPassword,
		Role:     domain.RoleGlobalAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Global admin created: %s", admin.Email)
	return nil
}

// seedISOClauses seeds the ISO 21001 clause master list every tenant
// submits evidence against.
func (s *Seeder) seedISOClauses() error {
	var count int64
	s.db.Model(&models.ISOClause{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	clauses := []models.ISOClause{
		{Code: "4.1", Title: "Understanding the organization and its context", IsActive: true},
		{Code: "4.2", Title: "Understanding the needs and expectations of interested parties", IsActive: true},
		{Code: "5.1", Title: "Leadership and commitment", IsActive: true},
		{Code: "5.2", Title: "Policy", IsActive: true},
		{Code: "6.1", Title: "Actions to address risks and opportunities", IsActive: true},
		{Code: "6.2", Title: "Educational organization objectives and planning", IsActive: true},
		{Code: "7.1", Title: "Resources", IsActive: true},
		{Code: "7.2", Title: "Competence", IsActive: true},
		{Code: "7.5", Title: "Documented information", IsActive: true},
		{Code: "8.1", Title: "Operational planning and control", IsActive: true},
		{Code: "8.2", Title: "Requirements for the educational products and services", IsActive: true},
		{Code: "9.1", Title: "Monitoring, measurement, analysis and evaluation", IsActive: true},
		{Code: "9.2", Title: "Internal audit", IsActive: true},
		{Code: "10.1", Title: "Nonconformity and corrective action", IsActive: true},
		{Code: "10.2", Title: "Continual improvement", IsActive: true},
	}

	for i := range clauses {
		if err := s.db.Create(&clauses[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d ISO clauses", len(clauses))
	return nil
}
