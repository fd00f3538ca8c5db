package models

import "time"

// Staff is a person employable at events, owned by a company. The CPF is
// stored digits-only and is unique within the company.
type Staff struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CPF       string    `json:"cpf" db:"cpf"`
	CompanyID int64     `json:"company" db:"company_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy NullInt64 `json:"created_by,omitempty" db:"created_by"`
}

// StaffInput is the payload for creating or updating a staff member.
type StaffInput struct {
	Name string `json:"name" binding:"required"`
	CPF  string `json:"cpf" binding:"required"`
}
