package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicas/internal/cache"
	apperrors "practicas/internal/errors"
	"practicas/internal/model"
)

type engineFixture struct {
	users  *memUserRepo
	offers *memOfferRepo
	apps   *memApplicationRepo
	engine ApplicationService
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		users:  newMemUserRepo(),
		offers: newMemOfferRepo(),
		apps:   newMemApplicationRepo(),
	}
	f.engine = NewApplicationService(f.apps, f.offers, f.users, nil)
	return f
}

func (f *engineFixture) createOffer(t *testing.T, title string) *model.Offer {
	t.Helper()
	offer := &model.Offer{
		Title:       title,
		CompanyID:   7,
		CompanyName: "TechCorp S.A.",
		Status:      model.OfferStatusPending,
	}
	require.NoError(t, f.offers.Create(context.Background(), offer))
	return offer
}

var juanSnapshot = model.ProfileSnapshot{
	Name:      "Juan Pérez Estudiante",
	Email:     "estudiante@pascualbravo.edu.co",
	Phone:     "3003456789",
	StudentID: "1234567890",
	Career:    "Ingeniería de Sistemas",
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")

	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	assert.NotZero(t, app.ID)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.Equal(t, offer.ID, app.OfferID)
	assert.Equal(t, "QA Intern", app.OfferTitle)
	assert.Equal(t, uint(42), app.StudentID)
	assert.Equal(t, juanSnapshot.Name, app.StudentName)
	assert.Equal(t, offer.CompanyID, app.CompanyID)
	assert.Equal(t, offer.CompanyName, app.CompanyName)
	assert.Equal(t, juanSnapshot, app.ProfileSnapshot)
	assert.False(t, app.AppliedAt.IsZero())
	assert.Nil(t, app.CompanyReviewedAt)
	assert.Nil(t, app.AdminReviewedAt)

	stored, err := f.offers.FindByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ApplicantsCount)
}

func TestApplyCounterTracksEveryApplication(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "Backend Intern")

	// Duplicate applications from the same student are allowed.
	for i := 0; i < 5; i++ {
		_, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
		require.NoError(t, err)
	}

	stored, err := f.offers.FindByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.ApplicantsCount)

	apps, err := f.engine.ListForOffer(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 5)
}

func TestApplyInvalidatesCachedOffer(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)

	users := newMemUserRepo()
	offers := newMemOfferRepo()
	apps := newMemApplicationRepo()
	offerSvc := NewOfferService(offers, users, cacheClient)
	engine := NewApplicationService(apps, offers, users, cacheClient)

	offer := &model.Offer{Title: "QA Intern", CompanyID: 7, CompanyName: "TechCorp S.A."}
	require.NoError(t, offers.Create(context.Background(), offer))

	// Warm the cache before anyone applies.
	cached, err := offerSvc.GetOffer(context.Background(), offer.ID)
	require.NoError(t, err)
	require.Zero(t, cached.ApplicantsCount)

	_, err = engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	// The read-after-apply path must see the new counter, not the cached copy.
	got, err := offerSvc.GetOffer(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ApplicantsCount)
}

func TestApplyUnknownOffer(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.Apply(context.Background(), 999, 42, juanSnapshot)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)

	apps, err := f.engine.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestCompanyReviewStampsVerdict(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	reviewed, err := f.engine.CompanyReview(context.Background(), app.ID, model.ApplicationStatusCompanyAccepted)
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusCompanyAccepted, reviewed.Status)
	require.NotNil(t, reviewed.CompanyReviewedAt)
	assert.False(t, reviewed.CompanyReviewedAt.Before(reviewed.AppliedAt))
}

func TestCompanyReviewTargetStatuses(t *testing.T) {
	tests := []struct {
		status  string
		allowed bool
	}{
		{model.ApplicationStatusCompanyAccepted, true},
		{model.ApplicationStatusCompanyRejected, true},
		{model.ApplicationStatusApproved, false},
		{model.ApplicationStatusRejected, false},
		{model.ApplicationStatusPending, false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := newEngineFixture()
			offer := f.createOffer(t, "QA Intern")
			app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
			require.NoError(t, err)

			_, err = f.engine.CompanyReview(context.Background(), app.ID, tt.status)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
			}
		})
	}
}

func TestCompanyReviewUnknownApplication(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.CompanyReview(context.Background(), 999, model.ApplicationStatusCompanyAccepted)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestAdminReviewAssignsTeacher(t *testing.T) {
	f := newEngineFixture()
	teacher := &model.User{Name: "Carlos Gómez", Email: "profesor@pascualbravo.edu.co", Role: model.RoleTeacher}
	require.NoError(t, f.users.Create(context.Background(), teacher))

	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)
	_, err = f.engine.CompanyReview(context.Background(), app.ID, model.ApplicationStatusCompanyAccepted)
	require.NoError(t, err)

	reviewed, err := f.engine.AdminReview(context.Background(), app.ID, model.ApplicationStatusApproved, AdminReviewOptions{
		AssignedTeacherID: &teacher.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.AdminReviewedAt)
	require.NotNil(t, reviewed.AssignedTeacherID)
	assert.Equal(t, teacher.ID, *reviewed.AssignedTeacherID)
	assert.Equal(t, "Carlos Gómez", reviewed.AssignedTeacherName)
}

func TestAdminReviewUnresolvableTeacherIsSilent(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	missing := uint(999)
	reviewed, err := f.engine.AdminReview(context.Background(), app.ID, model.ApplicationStatusApproved, AdminReviewOptions{
		AssignedTeacherID: &missing,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.AssignedTeacherID)
	assert.Equal(t, missing, *reviewed.AssignedTeacherID)
	assert.Empty(t, reviewed.AssignedTeacherName)
	assert.NotNil(t, reviewed.AdminReviewedAt)
}

func TestAdminReviewTargetStatuses(t *testing.T) {
	tests := []struct {
		status  string
		allowed bool
	}{
		{model.ApplicationStatusApproved, true},
		{model.ApplicationStatusRejected, true},
		{model.ApplicationStatusCompanyAccepted, false},
		{model.ApplicationStatusCompanyRejected, false},
		{model.ApplicationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := newEngineFixture()
			offer := f.createOffer(t, "QA Intern")
			app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
			require.NoError(t, err)

			_, err = f.engine.AdminReview(context.Background(), app.ID, tt.status, AdminReviewOptions{})
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
			}
		})
	}
}

func TestAdminReviewSetsStartDate(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	start := app.AppliedAt.AddDate(0, 1, 0)
	reviewed, err := f.engine.AdminReview(context.Background(), app.ID, model.ApplicationStatusApproved, AdminReviewOptions{
		StartDate: &start,
	})
	require.NoError(t, err)
	require.NotNil(t, reviewed.StartDate)
	assert.True(t, reviewed.StartDate.Equal(start))
}

func TestSnapshotSurvivesProfileEdits(t *testing.T) {
	f := newEngineFixture()
	student := &model.User{
		Name:      juanSnapshot.Name,
		Email:     juanSnapshot.Email,
		Role:      model.RoleStudent,
		Phone:     juanSnapshot.Phone,
		StudentID: juanSnapshot.StudentID,
		Career:    juanSnapshot.Career,
	}
	require.NoError(t, f.users.Create(context.Background(), student))

	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, student.ID, juanSnapshot)
	require.NoError(t, err)

	// Edit the live profile after applying.
	student.Name = "Juan P. Renombrado"
	student.Phone = "3110000000"
	require.NoError(t, f.users.Update(context.Background(), student))

	apps, err := f.engine.ListForStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
	assert.Equal(t, juanSnapshot, apps[0].ProfileSnapshot)
	assert.Equal(t, juanSnapshot.Name, apps[0].StudentName)
}

func TestOfferDeletionKeepsApplications(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")
	app, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)

	require.NoError(t, f.offers.Delete(context.Background(), offer.ID))

	apps, err := f.engine.ListForStudent(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
	assert.Equal(t, "QA Intern", apps[0].OfferTitle)
	assert.Equal(t, offer.ID, apps[0].OfferID)
}

func TestListAllFiltersByStatus(t *testing.T) {
	f := newEngineFixture()
	offer := f.createOffer(t, "QA Intern")

	first, err := f.engine.Apply(context.Background(), offer.ID, 42, juanSnapshot)
	require.NoError(t, err)
	_, err = f.engine.Apply(context.Background(), offer.ID, 43, juanSnapshot)
	require.NoError(t, err)
	_, err = f.engine.CompanyReview(context.Background(), first.ID, model.ApplicationStatusCompanyRejected)
	require.NoError(t, err)

	pending, err := f.engine.ListAll(context.Background(), model.ApplicationStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	rejected, err := f.engine.ListAll(context.Background(), model.ApplicationStatusCompanyRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, first.ID, rejected[0].ID)

	all, err := f.engine.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
