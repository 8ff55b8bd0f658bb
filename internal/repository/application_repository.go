package repository

import (
	"context"

	"gorm.io/gorm"

	"practicas/internal/model"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.Application, error)
	ListByOffer(ctx context.Context, offerID uint) ([]model.Application, error)
	List(ctx context.Context, status string) ([]model.Application, error)
	Update(ctx context.Context, app *model.Application) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository builds a GORM-backed repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Application, error) {
	var apps []model.Application
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("id").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByOffer(ctx context.Context, offerID uint) ([]model.Application, error) {
	var apps []model.Application
	if err := r.db.WithContext(ctx).Where("offer_id = ?", offerID).Order("id").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// List returns all applications, optionally filtered by status.
func (r *applicationRepository) List(ctx context.Context, status string) ([]model.Application, error) {
	q := r.db.WithContext(ctx).Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var apps []model.Application
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).Where("status = ?", status).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
