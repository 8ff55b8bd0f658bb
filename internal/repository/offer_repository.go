package repository

import (
	"context"

	"gorm.io/gorm"

	"practicas/internal/model"
)

// OfferFilter narrows offer listings. Zero values mean "no filter"; Search
// matches title, description, company name and career.
type OfferFilter struct {
	Status    string
	CompanyID uint
	Career    string
	Type      string
	Search    string
}

// OfferRepository defines persistence operations for offers.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	FindByID(ctx context.Context, id uint) (*model.Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]model.Offer, error)
	Update(ctx context.Context, offer *model.Offer) error
	Delete(ctx context.Context, id uint) error
	IncrementApplicants(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository builds a GORM-backed repository.
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) FindByID(ctx context.Context, id uint) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) List(ctx context.Context, filter OfferFilter) ([]model.Offer, error) {
	q := r.db.WithContext(ctx).Order("id")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CompanyID != 0 {
		q = q.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Career != "" {
		q = q.Where("career = ?", filter.Career)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR company_name LIKE ? OR career LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	var offers []model.Offer
	if err := q.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) Update(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

// Delete is idempotent: removing an absent id is a no-op. Applications
// referencing the offer are left untouched.
func (r *offerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Offer{}, id).Error
}

// IncrementApplicants bumps applicants_count by one on the database side so
// concurrent applies cannot lose updates. Incrementing an absent id affects
// zero rows and is not an error.
func (r *offerRepository) IncrementApplicants(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Offer{}).
		Where("id = ?", id).
		UpdateColumn("applicants_count", gorm.Expr("applicants_count + ?", 1)).
		Error
}

func (r *offerRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Offer{}).Where("status = ?", status).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
