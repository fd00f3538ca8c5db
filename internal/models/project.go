package models

import "time"

// Project groups events under a company.
type Project struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	DateBegin   NullTime   `json:"date_begin,omitempty" db:"date_begin"`
	DateEnd     NullTime   `json:"date_end,omitempty" db:"date_end"`
	Status      Status     `json:"status" db:"status"`
	CompanyID   int64      `json:"company" db:"company_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy   NullInt64  `json:"created_by,omitempty" db:"created_by"`
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	DateBegin   *time.Time `json:"date_begin"`
	DateEnd     *time.Time `json:"date_end"`
	Status      Status     `json:"status"`
	CompanyID   int64      `json:"company" binding:"required"`
}
