package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"practicas/internal/cache"
	apperrors "practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
)

const offerCacheTTL = 5 * time.Minute

// OfferUpdate carries the mutable offer fields; nil pointers leave the stored
// value untouched (shallow merge).
type OfferUpdate struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Requirements *string    `json:"requirements,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Type         *string    `json:"type,omitempty"`
	Career       *string    `json:"career,omitempty"`
	Status       *string    `json:"status,omitempty"`
}

// OfferService exposes offer CRUD plus the admin approval flow (a status
// update to approved/rejected).
type OfferService interface {
	ListOffers(ctx context.Context, filter repository.OfferFilter) ([]model.Offer, error)
	GetOffer(ctx context.Context, id uint) (*model.Offer, error)
	CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	UpdateOffer(ctx context.Context, id uint, update OfferUpdate) (*model.Offer, error)
	DeleteOffer(ctx context.Context, id uint) error
}

type offerService struct {
	repo  repository.OfferRepository
	users repository.UserRepository
	cache *cache.Client
}

// NewOfferService builds an OfferService with repository and cache.
func NewOfferService(repo repository.OfferRepository, users repository.UserRepository, cache *cache.Client) OfferService {
	return &offerService{repo: repo, users: users, cache: cache}
}

func (s *offerService) ListOffers(ctx context.Context, filter repository.OfferFilter) ([]model.Offer, error) {
	return s.repo.List(ctx, filter)
}

func (s *offerService) GetOffer(ctx context.Context, id uint) (*model.Offer, error) {
	if data, _ := s.cache.Get(ctx, cache.OfferKey(id)); data != nil {
		var cached model.Offer
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}

	if payload, err := json.Marshal(offer); err == nil {
		_ = s.cache.Set(ctx, cache.OfferKey(id), payload, offerCacheTTL)
	}
	return offer, nil
}

// CreateOffer stores a new posting. Status and applicants count are forced to
// their initial values regardless of what the caller sent, and the company
// name is denormalized from the owning account when it resolves.
func (s *offerService) CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	offer.ID = 0
	offer.Status = model.OfferStatusPending
	offer.ApplicantsCount = 0

	if owner, err := s.users.FindByID(ctx, offer.CompanyID); err == nil {
		if owner.CompanyName != "" {
			offer.CompanyName = owner.CompanyName
		} else {
			offer.CompanyName = owner.Name
		}
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, id uint, update OfferUpdate) (*model.Offer, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}

	if update.Title != nil {
		offer.Title = *update.Title
	}
	if update.Description != nil {
		offer.Description = *update.Description
	}
	if update.Requirements != nil {
		offer.Requirements = *update.Requirements
	}
	if update.Deadline != nil {
		offer.Deadline = *update.Deadline
	}
	if update.Type != nil {
		offer.Type = *update.Type
	}
	if update.Career != nil {
		offer.Career = *update.Career
	}
	if update.Status != nil {
		if !validOfferStatus(*update.Status) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, *update.Status)
		}
		offer.Status = *update.Status
	}

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.OfferKey(id))
	return offer, nil
}

// DeleteOffer removes the posting. Existing applications keep their
// denormalized copy of the offer and are not deleted.
func (s *offerService) DeleteOffer(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return s.cache.Delete(ctx, cache.OfferKey(id))
}

func validOfferStatus(status string) bool {
	switch status {
	case model.OfferStatusPending, model.OfferStatusApproved, model.OfferStatusRejected:
		return true
	default:
		return false
	}
}
