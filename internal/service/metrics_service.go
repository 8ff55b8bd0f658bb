package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"practicas/internal/cache"
	"practicas/internal/model"
	"practicas/internal/repository"
)

const metricsCacheTTL = time.Minute

// Metrics is the admin dashboard summary.
type Metrics struct {
	TotalUsers        int64 `json:"total_users"`
	PendingOffers     int64 `json:"pending_offers"`
	OngoingPractices  int64 `json:"ongoing_practices"`
	TotalApplications int64 `json:"total_applications"`
}

// MetricsService aggregates platform-wide counts for the admin dashboard.
type MetricsService interface {
	AdminMetrics(ctx context.Context) (*Metrics, error)
}

type metricsService struct {
	users  repository.UserRepository
	offers repository.OfferRepository
	apps   repository.ApplicationRepository
	cache  *cache.Client
}

// NewMetricsService builds a MetricsService over the three repositories.
func NewMetricsService(users repository.UserRepository, offers repository.OfferRepository, apps repository.ApplicationRepository, cache *cache.Client) MetricsService {
	return &metricsService{users: users, offers: offers, apps: apps, cache: cache}
}

func (s *metricsService) AdminMetrics(ctx context.Context) (*Metrics, error) {
	if data, _ := s.cache.Get(ctx, cache.MetricsKey); data != nil {
		var cached Metrics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var m Metrics
	var err error
	if m.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if m.PendingOffers, err = s.offers.CountByStatus(ctx, model.OfferStatusPending); err != nil {
		return nil, fmt.Errorf("count pending offers: %w", err)
	}
	if m.OngoingPractices, err = s.apps.CountByStatus(ctx, model.ApplicationStatusApproved); err != nil {
		return nil, fmt.Errorf("count ongoing practices: %w", err)
	}
	if m.TotalApplications, err = s.apps.Count(ctx); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	if payload, err := json.Marshal(&m); err == nil {
		_ = s.cache.Set(ctx, cache.MetricsKey, payload, metricsCacheTTL)
	}
	return &m, nil
}
