package services

import (
	"context"
	"errors"
	"log"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"
	"schoolhub-erp/internal/pkg/password"
)

// User service errors
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUnknownRole      = errors.New("unknown role")
	ErrRoleNeedsSchool  = errors.New("role requires a school")
	ErrSchoolNotFound   = errors.New("school not found")
	ErrCannotManageRole = errors.New("cannot manage a principal of this role")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
)

// UserService handles principal administration
type UserService struct {
	userRepo   repositories.UserRepository
	schoolRepo *repositories.SchoolRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, schoolRepo *repositories.SchoolRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		schoolRepo: schoolRepo,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
	SchoolID *uint  `json:"school_id"`
}

// Create creates a principal. A global admin may create any role; a tenant
// admin may only create coordinators inside their own school.
func (s *UserService) Create(ctx context.Context, actor *domain.Scope, input *CreateUserInput) (*models.User, error) {
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, ErrUnknownRole
	}

	schoolID := input.SchoolID
	if !actor.Global() {
		if role != domain.RoleCoordinator {
			return nil, ErrCannotManageRole
		}
		schoolID = actor.SchoolID
	}

	if role.RequiresTenant() {
		if schoolID == nil {
			return nil, ErrRoleNeedsSchool
		}
		if _, err := s.schoolRepo.GetByID(ctx, *schoolID); err != nil {
			return nil, ErrSchoolNotFound
		}
	} else {
		schoolID = nil
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		FullName: input.FullName,
		Password: hashed,
		Role:     role,
		SchoolID: schoolID,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("✅ User created: %s [%s]", user.Email, user.Role)
	return user, nil
}

// GetByID gets a principal visible to the actor. Non-global actors only see
// principals of their own school.
func (s *UserService) GetByID(ctx context.Context, actor *domain.Scope, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !actor.Global() && !actor.OwnsSchool(user.SchoolID) {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	FullName string `json:"full_name" validate:"required,max=100"`
}

// Update updates a principal's profile fields
func (s *UserService) Update(ctx context.Context, actor *domain.Scope, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive deactivates or reactivates a principal. Deactivation takes effect
// on the principal's next request because the guard re-reads the row; their
// unexpired tokens stop working immediately.
func (s *UserService) SetActive(ctx context.Context, actor *domain.Scope, id uint, active bool) error {
	if actor.PrincipalID == id && !active {
		return ErrSelfDeactivation
	}

	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	log.Printf("✅ User %d active=%v", id, active)
	return nil
}

// List lists principals visible to the actor
func (s *UserService) List(ctx context.Context, actor *domain.Scope, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, actor, offset, limit)
}
