package models

import "time"

// User represents an operator account. Users sign in with a verified Google
// identity; there is no local password credential.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CompanyID NullInt64 `json:"company,omitempty" db:"company_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy NullInt64 `json:"created_by,omitempty" db:"created_by"`
}

// NewUserInput is the payload for provisioning a user through the admin API.
type NewUserInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      Role   `json:"role" binding:"required"`
	CompanyID *int64 `json:"company"`
}
