package models

import "time"

// Event is a scheduled happening under a project.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	DateBegin   time.Time `json:"date_begin" db:"date_begin"`
	DateEnd     time.Time `json:"date_end" db:"date_end"`
	Status      Status    `json:"status" db:"status"`
	ProjectID   NullInt64 `json:"project,omitempty" db:"project_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CreatedBy   NullInt64 `json:"created_by,omitempty" db:"created_by"`

	// Owning company via the project, populated only by queries that join.
	CompanyID NullInt64 `json:"-" db:"company_id"`
}

// EventInput is the payload for creating or updating an event.
type EventInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	DateBegin   time.Time `json:"date_begin" binding:"required"`
	DateEnd     time.Time `json:"date_end" binding:"required"`
	Status      Status    `json:"status"`
	ProjectID   *int64    `json:"project"`
}

// EventOverview is the aggregate view of a single event.
type EventOverview struct {
	Name       string `json:"name" db:"name"`
	TotalStaff int64  `json:"total_staff" db:"total_staff"`
	Status     Status `json:"status" db:"status"`
}
