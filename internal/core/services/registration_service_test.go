package services

import (
	"context"
	"testing"

	"schoolhub-erp/internal/adapters/persistence/models"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

// fakeRegRepo is an in-memory RegistrationRepository. Create enforces the
// (school, kind, resource) uniqueness the real store gets from its index.
type fakeRegRepo struct {
	byID     map[uint]*models.Registration
	created  []*models.Registration
	updated  []*models.Registration
	deleted  []uint
	evidence map[uint][]uint
}

func newFakeRegRepo(regs ...*models.Registration) *fakeRegRepo {
	r := &fakeRegRepo{
		byID:     map[uint]*models.Registration{},
		evidence: map[uint][]uint{},
	}
	for _, reg := range regs {
		r.byID[reg.ID] = reg
	}
	return r
}

func (r *fakeRegRepo) Create(_ context.Context, reg *models.Registration, documentIDs []uint) error {
	for _, existing := range r.byID {
		if existing.SchoolID == reg.SchoolID && existing.ResourceKind == reg.ResourceKind && existing.ResourceID == reg.ResourceID {
			return domain.ErrDuplicateEntry
		}
	}
	reg.ID = uint(len(r.byID) + 1)
	r.byID[reg.ID] = reg
	r.created = append(r.created, reg)
	r.evidence[reg.ID] = append(r.evidence[reg.ID], documentIDs...)
	return nil
}

func (r *fakeRegRepo) GetByID(_ context.Context, scope *domain.Scope, id uint) (*models.Registration, error) {
	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !scope.Global() {
		if scope.SchoolID == nil || reg.SchoolID != *scope.SchoolID {
			return nil, domain.ErrNotFound
		}
	}
	return reg, nil
}

func (r *fakeRegRepo) GetByResource(_ context.Context, schoolID uint, kind domain.ResourceKind, resourceID uint) (*models.Registration, error) {
	for _, reg := range r.byID {
		if reg.SchoolID == schoolID && reg.ResourceKind == kind && reg.ResourceID == resourceID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegRepo) Update(_ context.Context, reg *models.Registration, documentIDs []uint) error {
	r.byID[reg.ID] = reg
	r.updated = append(r.updated, reg)
	r.evidence[reg.ID] = append(r.evidence[reg.ID], documentIDs...)
	return nil
}

func (r *fakeRegRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRegRepo) List(_ context.Context, _ *domain.Scope, _ *domain.RegistrationStatus, _, _ int) ([]*models.Registration, int64, error) {
	out := make([]*models.Registration, 0, len(r.byID))
	for _, reg := range r.byID {
		out = append(out, reg)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRegRepo) CountByStatus(_ context.Context, _ *domain.Scope, _ domain.RegistrationStatus) (int64, error) {
	return 0, nil
}

// fakeClubRepo serves one club to the register open-resource check
type fakeClubRepo struct {
	club *models.Club
}

func (r *fakeClubRepo) GetByID(_ context.Context, _ *domain.Scope, id uint) (*models.Club, error) {
	if r.club == nil || r.club.ID != id {
		return nil, domain.ErrNotFound
	}
	return r.club, nil
}

// fakeDocRepo owns a fixed set of document ids
type fakeDocRepo struct {
	owned []uint
}

func (r *fakeDocRepo) GetOwnedByIDs(_ context.Context, _ *domain.Scope, ids []uint) ([]*models.Document, error) {
	var docs []*models.Document
	for _, id := range ids {
		for _, o := range r.owned {
			if id == o {
				docs = append(docs, &models.Document{ID: id})
			}
		}
	}
	return docs, nil
}

// fakeUserRepo serves ListAdminsBySchool for review notifications
type fakeUserRepo struct {
	admins []*models.User
}

func (r *fakeUserRepo) Create(context.Context, *models.User) error          { return nil }
func (r *fakeUserRepo) GetByID(context.Context, uint) (*models.User, error) { return nil, domain.ErrNotFound }
func (r *fakeUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeUserRepo) Update(context.Context, *models.User) error    { return nil }
func (r *fakeUserRepo) SetActive(context.Context, uint, bool) error   { return nil }
func (r *fakeUserRepo) List(context.Context, *domain.Scope, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) ListAdminsBySchool(context.Context, uint) ([]*models.User, error) {
	return r.admins, nil
}
func (r *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

// fakeNotifRepo records emitted notifications
type fakeNotifRepo struct {
	created []*models.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *models.Notification) error {
	r.created = append(r.created, n)
	return nil
}
func (r *fakeNotifRepo) ListUnread(context.Context, uint) ([]*models.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) MarkRead(context.Context, uint, uint) error { return nil }
func (r *fakeNotifRepo) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
func (r *fakeNotifRepo) CountUnread(context.Context, uint) (int64, error) { return 0, nil }

// fakePointRepo records awarded points
type fakePointRepo struct {
	entries []*models.PointEntry
}

func (r *fakePointRepo) Create(_ context.Context, entry *models.PointEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}
func (r *fakePointRepo) TotalForUser(context.Context, uint) (int64, error) { return 0, nil }
func (r *fakePointRepo) Leaderboard(context.Context, uint, int) ([]*repositories.LeaderboardRow, error) {
	return nil, nil
}

type workflowFixture struct {
	svc     *RegistrationService
	regRepo *fakeRegRepo
	clubs   *fakeClubRepo
	docs    *fakeDocRepo
	notifs  *fakeNotifRepo
	points  *fakePointRepo
	users   *fakeUserRepo
}

func newWorkflowFixture(regs ...*models.Registration) *workflowFixture {
	regRepo := newFakeRegRepo(regs...)
	clubs := &fakeClubRepo{}
	docs := &fakeDocRepo{}
	notifs := &fakeNotifRepo{}
	points := &fakePointRepo{}
	users := &fakeUserRepo{}

	svc := NewRegistrationService(
		regRepo,
		clubs, nil, nil, nil,
		docs,
		users,
		NewNotificationService(notifs),
		NewGamificationService(points),
	)
	return &workflowFixture{svc: svc, regRepo: regRepo, clubs: clubs, docs: docs, notifs: notifs, points: points, users: users}
}

func tenantScope(school uint) *domain.Scope {
	return &domain.Scope{PrincipalID: 10, Role: domain.RoleTenantAdmin, SchoolID: uintPtr(school)}
}

func globalScope() *domain.Scope {
	return &domain.Scope{PrincipalID: 1, Role: domain.RoleGlobalAdmin}
}

func TestRegister_GlobalAdminCannotRegister(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	_, err := f.svc.Register(context.Background(), globalScope(), domain.KindClub, 1, nil)
	assert.ErrorIs(t, err, ErrNotRegistrant)
}

func TestRegister_KindMustBeRegistrable(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	_, err := f.svc.Register(context.Background(), tenantScope(5), domain.KindStudent, 1, nil)
	assert.ErrorIs(t, err, ErrNotRegistrable)
}

func TestRegister_CreatesPending(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	f.clubs.club = &models.Club{ID: 3, Name: "Robotics", IsOpen: true}

	actor := tenantScope(5)
	reg, err := f.svc.Register(context.Background(), actor, domain.KindClub, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, reg.Status)
	assert.Equal(t, uint(5), reg.SchoolID)
	assert.Nil(t, reg.SubmittedBy)
	require.Len(t, f.regRepo.created, 1)

	require.Len(t, f.points.entries, 1)
	assert.Equal(t, models.PointActionRegister, f.points.entries[0].Action)
	assert.Equal(t, actor.PrincipalID, f.points.entries[0].UserID)
}

func TestRegister_ClosedResource(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	f.clubs.club = &models.Club{ID: 3, Name: "Robotics", IsOpen: false}

	_, err := f.svc.Register(context.Background(), tenantScope(5), domain.KindClub, 3, nil)
	assert.ErrorIs(t, err, ErrResourceClosed)
	assert.Empty(t, f.regRepo.created)
	assert.Empty(t, f.points.entries)
}

func TestRegister_WithEvidenceIsSubmitted(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	f.clubs.club = &models.Club{ID: 3, Name: "Robotics", IsOpen: true}
	f.docs.owned = []uint{4, 5}

	actor := tenantScope(5)
	reg, err := f.svc.Register(context.Background(), actor, domain.KindClub, 3, []uint{4, 5})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSubmitted, reg.Status)
	require.NotNil(t, reg.SubmittedBy)
	assert.Equal(t, actor.PrincipalID, *reg.SubmittedBy)
	assert.NotNil(t, reg.SubmittedAt)

	// evidence lands in the same write as the registration
	assert.Equal(t, []uint{4, 5}, f.regRepo.evidence[reg.ID])
}

func TestRegister_EvidenceMustBeOwned(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	f.clubs.club = &models.Club{ID: 3, Name: "Robotics", IsOpen: true}
	f.docs.owned = []uint{4}

	// document 9 belongs to another tenant, so it does not resolve
	_, err := f.svc.Register(context.Background(), tenantScope(5), domain.KindClub, 3, []uint{4, 9})
	assert.ErrorIs(t, err, ErrEvidenceNotFound)
	assert.Empty(t, f.regRepo.created)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	f.clubs.club = &models.Club{ID: 3, Name: "Robotics", IsOpen: true}

	_, err := f.svc.Register(context.Background(), tenantScope(5), domain.KindClub, 3, nil)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), tenantScope(5), domain.KindClub, 3, nil)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Len(t, f.regRepo.created, 1)
	assert.Len(t, f.points.entries, 1, "the losing attempt must not award points")
}

func TestSubmit_FromPending(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, ResourceKind: domain.KindClub, ResourceID: 2, Status: domain.StatusPending}
	f := newWorkflowFixture(reg)

	actor := tenantScope(5)
	got, err := f.svc.Submit(context.Background(), actor, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSubmitted, got.Status)
	require.NotNil(t, got.SubmittedBy)
	assert.Equal(t, actor.PrincipalID, *got.SubmittedBy)
	assert.NotNil(t, got.SubmittedAt)
	require.Len(t, f.regRepo.updated, 1)

	// submit points awarded to the submitter
	require.Len(t, f.points.entries, 1)
	assert.Equal(t, models.PointActionSubmit, f.points.entries[0].Action)
	assert.Equal(t, actor.PrincipalID, f.points.entries[0].UserID)
}

func TestSubmit_AlreadySubmittedIsNoOp(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusSubmitted}
	f := newWorkflowFixture(reg)

	got, err := f.svc.Submit(context.Background(), tenantScope(5), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, got.Status)
	assert.Empty(t, f.regRepo.updated, "idempotent submit must not write")
	assert.Empty(t, f.points.entries, "idempotent submit must not award points")
}

func TestSubmit_ApprovedCannotBeResubmitted(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusApproved}
	f := newWorkflowFixture(reg)

	_, err := f.svc.Submit(context.Background(), tenantScope(5), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmit_RejectedCanBeResubmitted(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusRejected}
	f := newWorkflowFixture(reg)

	got, err := f.svc.Submit(context.Background(), tenantScope(5), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, got.Status)
}

func TestSubmit_CrossTenantIsNotFound(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusPending}
	f := newWorkflowFixture(reg)

	_, err := f.svc.Submit(context.Background(), tenantScope(6), 1, nil)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestReview_RequiresGlobalAdmin(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	_, err := f.svc.Review(context.Background(), tenantScope(5), 1, &ReviewInput{Decision: "approved"})
	assert.ErrorIs(t, err, ErrNotReviewable)
}

func TestReview_Approve(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{
		ID:           1,
		SchoolID:     5,
		ResourceKind: domain.KindTraining,
		Status:       domain.StatusSubmitted,
		SubmittedBy:  uintPtr(10),
	}
	f := newWorkflowFixture(reg)
	f.users.admins = []*models.User{{ID: 20}, {ID: 21}}

	got, err := f.svc.Review(context.Background(), globalScope(), 1, &ReviewInput{Decision: "approved", Comments: "well documented"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, uint(1), *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)
	assert.Equal(t, "well documented", got.Comments)

	// both tenant admins notified
	require.Len(t, f.notifs.created, 2)
	assert.Equal(t, uint(20), f.notifs.created[0].UserID)
	assert.Equal(t, models.NotifyCategoryWorkflow, f.notifs.created[0].Category)

	// approval points go to the submitter, not the reviewer
	require.Len(t, f.points.entries, 1)
	assert.Equal(t, models.PointActionApproved, f.points.entries[0].Action)
	assert.Equal(t, uint(10), f.points.entries[0].UserID)
}

func TestReview_Reject(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusSubmitted, SubmittedBy: uintPtr(10)}
	f := newWorkflowFixture(reg)
	f.users.admins = []*models.User{{ID: 20}}

	got, err := f.svc.Review(context.Background(), globalScope(), 1, &ReviewInput{Decision: "rejected", Comments: "evidence missing"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Len(t, f.notifs.created, 1)
	assert.Empty(t, f.points.entries, "rejection must not award points")
}

func TestReview_PendingCannotBeReviewed(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusPending}
	f := newWorkflowFixture(reg)

	_, err := f.svc.Review(context.Background(), globalScope(), 1, &ReviewInput{Decision: "approved"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReview_UnknownDecision(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	_, err := f.svc.Review(context.Background(), globalScope(), 1, &ReviewInput{Decision: "maybe"})
	assert.ErrorIs(t, err, ErrUnknownDecision)
}

func TestUnregister_OwnerCannotRemoveApproved(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusApproved}
	f := newWorkflowFixture(reg)

	err := f.svc.Unregister(context.Background(), tenantScope(5), 1)
	assert.ErrorIs(t, err, ErrApprovedRegistration)
	assert.Empty(t, f.regRepo.deleted)
}

func TestUnregister_GlobalAdminForceDeletes(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusApproved}
	f := newWorkflowFixture(reg)

	err := f.svc.Unregister(context.Background(), globalScope(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, f.regRepo.deleted)
}

func TestUnregister_OwnerRemovesPending(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 1, SchoolID: 5, Status: domain.StatusPending}
	f := newWorkflowFixture(reg)

	err := f.svc.Unregister(context.Background(), tenantScope(5), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, f.regRepo.deleted)
}

func TestUnregisterByResource(t *testing.T) {
	t.Parallel()

	reg := &models.Registration{ID: 3, SchoolID: 5, ResourceKind: domain.KindEvent, ResourceID: 9, Status: domain.StatusRejected}
	f := newWorkflowFixture(reg)

	err := f.svc.UnregisterByResource(context.Background(), tenantScope(5), domain.KindEvent, 9)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, f.regRepo.deleted)

	err = f.svc.UnregisterByResource(context.Background(), tenantScope(5), domain.KindEvent, 9)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	_, _, err := f.svc.List(context.Background(), globalScope(), "SHIPPED", 0, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
