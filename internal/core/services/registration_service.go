package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"
)

// Registration service errors
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrResourceClosed       = errors.New("resource is closed for registration")
	ErrNotRegistrable       = errors.New("resource kind cannot be registered for")
	ErrNotReviewable        = errors.New("only a global admin may review")
	ErrNotRegistrant        = errors.New("role cannot register")
	ErrApprovedRegistration = errors.New("approved registration cannot be removed")
	ErrUnknownDecision      = errors.New("decision must be approved or rejected")
	ErrEvidenceNotFound     = errors.New("evidence document not found")
)

// RegistrationService drives the tenant registration/submission workflow.
type RegistrationService struct {
	regRepo       repositories.RegistrationRepository
	clubRepo      repositories.ClubReader
	eventRepo     repositories.EventReader
	trainingRepo  repositories.TrainingReader
	clauseRepo    repositories.ClauseReader
	docRepo       repositories.DocumentReader
	userRepo      repositories.UserRepository
	notifyService *NotificationService
	gamification  *GamificationService
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	regRepo repositories.RegistrationRepository,
	clubRepo repositories.ClubReader,
	eventRepo repositories.EventReader,
	trainingRepo repositories.TrainingReader,
	clauseRepo repositories.ClauseReader,
	docRepo repositories.DocumentReader,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
	gamification *GamificationService,
) *RegistrationService {
	return &RegistrationService{
		regRepo:       regRepo,
		clubRepo:      clubRepo,
		eventRepo:     eventRepo,
		trainingRepo:  trainingRepo,
		clauseRepo:    clauseRepo,
		docRepo:       docRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
		gamification:  gamification,
	}
}

// checkResourceOpen verifies the resource exists within the actor's scope and
// still accepts registrations, and returns a display label for notifications.
func (s *RegistrationService) checkResourceOpen(ctx context.Context, actor *domain.Scope, kind domain.ResourceKind, resourceID uint) (string, error) {
	now := time.Now()
	switch kind {
	case domain.KindClub:
		club, err := s.clubRepo.GetByID(ctx, actor, resourceID)
		if err != nil {
			return "", err
		}
		if !club.IsOpen {
			return "", ErrResourceClosed
		}
		return fmt.Sprintf("club %q", club.Name), nil
	case domain.KindEvent:
		event, err := s.eventRepo.GetByID(ctx, actor, resourceID)
		if err != nil {
			return "", err
		}
		if !event.OpenForRegistration(now) {
			return "", ErrResourceClosed
		}
		return fmt.Sprintf("event %q", event.Title), nil
	case domain.KindTraining:
		training, err := s.trainingRepo.GetByID(ctx, actor, resourceID)
		if err != nil {
			return "", err
		}
		if !training.IsOpen || !now.Before(training.StartsAt) {
			return "", ErrResourceClosed
		}
		return fmt.Sprintf("training %q", training.Title), nil
	case domain.KindClause:
		clause, err := s.clauseRepo.GetByID(ctx, resourceID)
		if err != nil {
			return "", err
		}
		if !clause.IsActive {
			return "", ErrResourceClosed
		}
		return fmt.Sprintf("clause %s", clause.Code), nil
	}
	return "", ErrNotRegistrable
}

// verifyEvidence checks that the actor's tenant owns every referenced document.
func (s *RegistrationService) verifyEvidence(ctx context.Context, actor *domain.Scope, documentIDs []uint) error {
	if len(documentIDs) == 0 {
		return nil
	}
	docs, err := s.docRepo.GetOwnedByIDs(ctx, actor, documentIDs)
	if err != nil {
		return err
	}
	if len(docs) != len(documentIDs) {
		return ErrEvidenceNotFound
	}
	return nil
}

// Register creates a registration for the actor's tenant against a shared
// resource. Evidence attached atomically moves it straight to SUBMITTED.
// A concurrent duplicate loses on the store's unique index, not on a
// check-then-insert race.
func (s *RegistrationService) Register(ctx context.Context, actor *domain.Scope, kind domain.ResourceKind, resourceID uint, evidence []uint) (*models.Registration, error) {
	if !actor.Role.CanRegister() || actor.SchoolID == nil {
		return nil, ErrNotRegistrant
	}
	if !kind.Registrable() {
		return nil, ErrNotRegistrable
	}

	if _, err := s.checkResourceOpen(ctx, actor, kind, resourceID); err != nil {
		return nil, err
	}
	if err := s.verifyEvidence(ctx, actor, evidence); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		SchoolID:     *actor.SchoolID,
		ResourceKind: kind,
		ResourceID:   resourceID,
		Status:       domain.StatusPending,
	}
	if len(evidence) > 0 {
		now := time.Now()
		reg.Status = domain.StatusSubmitted
		reg.SubmittedBy = &actor.PrincipalID
		reg.SubmittedAt = &now
	}

	if err := s.regRepo.Create(ctx, reg, evidence); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	s.gamification.Award(ctx, actor.PrincipalID, actor.SchoolID, models.PointActionRegister)

	log.Printf("✅ Registration %d created: school=%d %s/%d [%s]", reg.ID, reg.SchoolID, kind, resourceID, reg.Status)
	return reg, nil
}

// Submit transitions PENDING or REJECTED to SUBMITTED, attaching evidence.
// Submitting an already-SUBMITTED registration is an idempotent no-op.
func (s *RegistrationService) Submit(ctx context.Context, actor *domain.Scope, registrationID uint, evidence []uint) (*models.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, actor, registrationID)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}

	if reg.Status == domain.StatusSubmitted {
		return reg, nil
	}
	if !domain.CanTransition(reg.Status, domain.StatusSubmitted) {
		return nil, ErrInvalidTransition
	}

	if err := s.verifyEvidence(ctx, actor, evidence); err != nil {
		return nil, err
	}

	now := time.Now()
	reg.Status = domain.StatusSubmitted
	reg.SubmittedBy = &actor.PrincipalID
	reg.SubmittedAt = &now

	if err := s.regRepo.Update(ctx, reg, evidence); err != nil {
		return nil, err
	}

	s.gamification.Award(ctx, actor.PrincipalID, actor.SchoolID, models.PointActionSubmit)

	log.Printf("✅ Registration %d submitted by user %d", reg.ID, actor.PrincipalID)
	return reg, nil
}

// ReviewInput represents review input
type ReviewInput struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments,omitempty" validate:"max=2000"`
}

// Review transitions SUBMITTED to APPROVED or REJECTED. Global admin only;
// the role check here backs up the route middleware so the invariant does
// not depend on wiring.
func (s *RegistrationService) Review(ctx context.Context, actor *domain.Scope, registrationID uint, input *ReviewInput) (*models.Registration, error) {
	if !actor.Global() {
		return nil, ErrNotReviewable
	}

	var decision domain.RegistrationStatus
	switch input.Decision {
	case "approved":
		decision = domain.StatusApproved
	case "rejected":
		decision = domain.StatusRejected
	default:
		return nil, ErrUnknownDecision
	}

	reg, err := s.regRepo.GetByID(ctx, actor, registrationID)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}

	if !domain.CanTransition(reg.Status, decision) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	reg.Status = decision
	reg.ReviewedBy = &actor.PrincipalID
	reg.ReviewedAt = &now
	reg.Comments = input.Comments

	if err := s.regRepo.Update(ctx, reg, nil); err != nil {
		return nil, err
	}

	s.notifyReview(ctx, reg, decision)

	if decision == domain.StatusApproved && reg.SubmittedBy != nil {
		s.gamification.Award(ctx, *reg.SubmittedBy, &reg.SchoolID, models.PointActionApproved)
	}

	log.Printf("✅ Registration %d reviewed: %s by user %d", reg.ID, decision, actor.PrincipalID)
	return reg, nil
}

// notifyReview alerts the registering tenant's admins. Best-effort.
func (s *RegistrationService) notifyReview(ctx context.Context, reg *models.Registration, decision domain.RegistrationStatus) {
	admins, err := s.userRepo.ListAdminsBySchool(ctx, reg.SchoolID)
	if err != nil {
		log.Printf("⚠️ Could not resolve admins of school %d for notification: %v", reg.SchoolID, err)
		return
	}

	verb := "approved"
	if decision == domain.StatusRejected {
		verb = "rejected"
	}
	message := fmt.Sprintf("Your %s registration #%d has been %s", reg.ResourceKind, reg.ID, verb)

	for _, admin := range admins {
		s.notifyService.Emit(ctx, admin.ID, message, models.NotifyCategoryWorkflow)
	}
}

// Unregister removes a registration. The owner tenant may remove its own
// non-approved registration; a global admin may force-delete any.
func (s *RegistrationService) Unregister(ctx context.Context, actor *domain.Scope, registrationID uint) error {
	reg, err := s.regRepo.GetByID(ctx, actor, registrationID)
	if err != nil {
		return ErrRegistrationNotFound
	}

	if !actor.Global() && reg.Status.IsFinal() {
		return ErrApprovedRegistration
	}

	if err := s.regRepo.Delete(ctx, reg.ID); err != nil {
		return err
	}

	log.Printf("✅ Registration %d removed by user %d", reg.ID, actor.PrincipalID)
	return nil
}

// UnregisterByResource removes the actor tenant's registration for a resource.
func (s *RegistrationService) UnregisterByResource(ctx context.Context, actor *domain.Scope, kind domain.ResourceKind, resourceID uint) error {
	if actor.SchoolID == nil {
		return ErrRegistrationNotFound
	}
	reg, err := s.regRepo.GetByResource(ctx, *actor.SchoolID, kind, resourceID)
	if err != nil {
		return ErrRegistrationNotFound
	}
	return s.Unregister(ctx, actor, reg.ID)
}

// GetByID gets a registration visible to the actor
func (s *RegistrationService) GetByID(ctx context.Context, actor *domain.Scope, registrationID uint) (*models.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, actor, registrationID)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

// List lists registrations visible to the actor, optionally filtered by status
func (s *RegistrationService) List(ctx context.Context, actor *domain.Scope, statusFilter string, offset, limit int) ([]*models.Registration, int64, error) {
	var status *domain.RegistrationStatus
	if statusFilter != "" {
		st := domain.RegistrationStatus(statusFilter)
		switch st {
		case domain.StatusPending, domain.StatusSubmitted, domain.StatusApproved, domain.StatusRejected:
			status = &st
		default:
			return nil, 0, domain.ErrInvalidInput
		}
	}
	return s.regRepo.List(ctx, actor, status, offset, limit)
}
