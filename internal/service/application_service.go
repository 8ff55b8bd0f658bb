package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"practicas/internal/cache"
	apperrors "practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
)

// AdminReviewOptions carries the optional fields an admin can set while
// approving or rejecting an application.
type AdminReviewOptions struct {
	AssignedTeacherID *uint      `json:"assigned_teacher_id,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
}

// ApplicationService owns the application review workflow: pending →
// company_accepted/company_rejected (company) → approved/rejected (admin).
type ApplicationService interface {
	Apply(ctx context.Context, offerID, studentID uint, snapshot model.ProfileSnapshot) (*model.Application, error)
	CompanyReview(ctx context.Context, id uint, status string) (*model.Application, error)
	AdminReview(ctx context.Context, id uint, status string, opts AdminReviewOptions) (*model.Application, error)
	ListForStudent(ctx context.Context, studentID uint) ([]model.Application, error)
	ListForOffer(ctx context.Context, offerID uint) ([]model.Application, error)
	ListAll(ctx context.Context, status string) ([]model.Application, error)
}

type applicationService struct {
	apps   repository.ApplicationRepository
	offers repository.OfferRepository
	users  repository.UserRepository
	cache  *cache.Client
}

// NewApplicationService builds the workflow engine over the given repositories.
func NewApplicationService(apps repository.ApplicationRepository, offers repository.OfferRepository, users repository.UserRepository, cache *cache.Client) ApplicationService {
	return &applicationService{apps: apps, offers: offers, users: users, cache: cache}
}

// Apply creates a pending application for the offer and bumps the offer's
// applicants counter. The snapshot is stored by value and never re-read from
// the live user record.
//
// A student may apply to the same offer more than once; no duplicate check is
// performed here.
func (s *applicationService) Apply(ctx context.Context, offerID, studentID uint, snapshot model.ProfileSnapshot) (*model.Application, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}

	app := &model.Application{
		OfferID:         offer.ID,
		OfferTitle:      offer.Title,
		StudentID:       studentID,
		StudentName:     snapshot.Name,
		CompanyID:       offer.CompanyID,
		CompanyName:     offer.CompanyName,
		Status:          model.ApplicationStatusPending,
		ProfileSnapshot: snapshot,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	// Record first, counter second: if the increment fails the application
	// row stays, so the counter can only ever lag behind, never run ahead.
	if err := s.offers.IncrementApplicants(ctx, offer.ID); err != nil {
		return nil, fmt.Errorf("increment applicants: %w", err)
	}
	// The counter changed, so a cached copy of the offer is now stale.
	_ = s.cache.Delete(ctx, cache.OfferKey(offer.ID))

	return app, nil
}

// CompanyReview moves an application to company_accepted or company_rejected
// and stamps the company review time.
//
// Only the target status is validated; the current status is not. Re-reviewing
// an already reviewed application therefore overwrites the earlier verdict,
// matching the behavior dashboards rely on. A stricter guard would return
// ErrInvalidTransition for anything not in pending.
func (s *applicationService) CompanyReview(ctx context.Context, id uint, status string) (*model.Application, error) {
	if status != model.ApplicationStatusCompanyAccepted && status != model.ApplicationStatusCompanyRejected {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}

	now := time.Now()
	app.Status = status
	app.CompanyReviewedAt = &now
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

// AdminReview moves an application to approved or rejected, stamps the admin
// review time and optionally assigns a supervising teacher and start date.
//
// An assigned teacher id that does not resolve to a user leaves the teacher
// name unset without raising an error. Intentional graceful degradation
// carried over from the source system; a candidate for stricter validation.
func (s *applicationService) AdminReview(ctx context.Context, id uint, status string, opts AdminReviewOptions) (*model.Application, error) {
	if status != model.ApplicationStatusApproved && status != model.ApplicationStatusRejected {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}

	if opts.AssignedTeacherID != nil {
		app.AssignedTeacherID = opts.AssignedTeacherID
		if teacher, err := s.users.FindByID(ctx, *opts.AssignedTeacherID); err == nil {
			app.AssignedTeacherName = teacher.Name
		}
	}
	if opts.StartDate != nil {
		app.StartDate = opts.StartDate
	}

	now := time.Now()
	app.Status = status
	app.AdminReviewedAt = &now
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

func (s *applicationService) ListForStudent(ctx context.Context, studentID uint) ([]model.Application, error) {
	return s.apps.ListByStudent(ctx, studentID)
}

func (s *applicationService) ListForOffer(ctx context.Context, offerID uint) ([]model.Application, error) {
	return s.apps.ListByOffer(ctx, offerID)
}

func (s *applicationService) ListAll(ctx context.Context, status string) ([]model.Application, error) {
	return s.apps.List(ctx, status)
}
