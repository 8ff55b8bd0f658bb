package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"practicas/internal/model"
	"practicas/internal/repository"
)

// In-memory repositories for the stateful workflow tests. They mirror the
// GORM implementations: sequential never-reused ids, creation timestamps,
// gorm.ErrRecordNotFound for absent rows, idempotent deletes.

type memUserRepo struct {
	users  map[uint]model.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(_ context.Context, filter repository.UserFilter) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), s) && !strings.Contains(strings.ToLower(u.Email), s) {
				continue
			}
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memOfferRepo struct {
	offers map[uint]model.Offer
	nextID uint
}

func newMemOfferRepo() *memOfferRepo {
	return &memOfferRepo{offers: map[uint]model.Offer{}}
}

func (r *memOfferRepo) Create(_ context.Context, o *model.Offer) error {
	r.nextID++
	o.ID = r.nextID
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if o.Status == "" {
		o.Status = model.OfferStatusPending
	}
	r.offers[o.ID] = *o
	return nil
}

func (r *memOfferRepo) FindByID(_ context.Context, id uint) (*model.Offer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (r *memOfferRepo) List(_ context.Context, filter repository.OfferFilter) ([]model.Offer, error) {
	var offers []model.Offer
	for _, o := range r.offers {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.CompanyID != 0 && o.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Career != "" && o.Career != filter.Career {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			haystack := strings.ToLower(o.Title + " " + o.Description + " " + o.CompanyName + " " + o.Career)
			if !strings.Contains(haystack, s) {
				continue
			}
		}
		offers = append(offers, o)
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].ID < offers[j].ID })
	return offers, nil
}

func (r *memOfferRepo) Update(_ context.Context, o *model.Offer) error {
	r.offers[o.ID] = *o
	return nil
}

func (r *memOfferRepo) Delete(_ context.Context, id uint) error {
	delete(r.offers, id)
	return nil
}

func (r *memOfferRepo) IncrementApplicants(_ context.Context, id uint) error {
	if o, ok := r.offers[id]; ok {
		o.ApplicantsCount++
		r.offers[id] = o
	}
	return nil
}

func (r *memOfferRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range r.offers {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type memApplicationRepo struct {
	apps   map[uint]model.Application
	nextID uint
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{apps: map[uint]model.Application{}}
}

func (r *memApplicationRepo) Create(_ context.Context, a *model.Application) error {
	r.nextID++
	a.ID = r.nextID
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}
	if a.Status == "" {
		a.Status = model.ApplicationStatusPending
	}
	r.apps[a.ID] = *a
	return nil
}

func (r *memApplicationRepo) FindByID(_ context.Context, id uint) (*model.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memApplicationRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Application, error) {
	return r.list(func(a model.Application) bool { return a.StudentID == studentID }), nil
}

func (r *memApplicationRepo) ListByOffer(_ context.Context, offerID uint) ([]model.Application, error) {
	return r.list(func(a model.Application) bool { return a.OfferID == offerID }), nil
}

func (r *memApplicationRepo) List(_ context.Context, status string) ([]model.Application, error) {
	return r.list(func(a model.Application) bool { return status == "" || a.Status == status }), nil
}

func (r *memApplicationRepo) list(keep func(model.Application) bool) []model.Application {
	var apps []model.Application
	for _, a := range r.apps {
		if keep(a) {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

func (r *memApplicationRepo) Update(_ context.Context, a *model.Application) error {
	r.apps[a.ID] = *a
	return nil
}

func (r *memApplicationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.apps)), nil
}

func (r *memApplicationRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, a := range r.apps {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}
