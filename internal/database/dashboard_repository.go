package database

import (
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// DashboardRepository computes aggregate counts for the dashboard
type DashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Metrics returns the dashboard counters in one round trip.
func (r *DashboardRepository) Metrics() (*models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	err := r.db.QueryRow(
		`SELECT
			(SELECT COUNT(*) FROM events WHERE status = 'open'),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM company),
			(SELECT COUNT(*) FROM users)`,
	).Scan(&metrics.ActiveEvents, &metrics.TotalProjects, &metrics.TotalCompanies, &metrics.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard metrics: %w", err)
	}
	return &metrics, nil
}
