package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/cache"
	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/models"
)

const dashboardCacheKey = "dashboard:metrics"

// DashboardService serves aggregate counts, caching them briefly so the
// dashboard doesn't hammer the database. The cache is optional: with a nil
// Cache every call goes to the database.
type DashboardService struct {
	repo   *database.DashboardRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo *database.DashboardRepository, c cache.Cache, ttl time.Duration, logger *logrus.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: c, ttl: ttl, logger: logger}
}

// Metrics returns the dashboard counters, from cache when fresh.
func (s *DashboardService) Metrics(ctx context.Context) (*models.DashboardMetrics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, dashboardCacheKey)
		if err == nil {
			var metrics models.DashboardMetrics
			if jsonErr := json.Unmarshal([]byte(cached), &metrics); jsonErr == nil {
				return &metrics, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.WithError(err).Warn("Dashboard cache read failed")
		}
	}

	metrics, err := s.repo.Metrics()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(metrics); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, string(payload), s.ttl); err != nil {
				s.logger.WithError(err).Warn("Dashboard cache write failed")
			}
		}
	}

	return metrics, nil
}
