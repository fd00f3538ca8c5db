package models

// DashboardMetrics holds the aggregate counts shown on the dashboard.
type DashboardMetrics struct {
	ActiveEvents   int64 `json:"activeEvents"`
	TotalProjects  int64 `json:"totalProjects"`
	TotalCompanies int64 `json:"totalCompanies"`
	TotalUsers     int64 `json:"totalUsers"`
}
