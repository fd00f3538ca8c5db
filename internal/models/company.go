package models

import "time"

// Company is a tenant: staff, projects and company users hang off it.
// The CNPJ is stored digits-only and is globally unique.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CNPJ      string    `json:"cnpj" db:"cnpj"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy NullInt64 `json:"created_by,omitempty" db:"created_by"`
}

// CompanyInput is the payload for creating or updating a company.
type CompanyInput struct {
	Name string `json:"name" binding:"required"`
	CNPJ string `json:"cnpj" binding:"required"`
}
