package database

import (
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// LoginAuditRepository persists successful sign-in records
type LoginAuditRepository struct {
	db DB
}

// NewLoginAuditRepository creates a new login audit repository
func NewLoginAuditRepository(db DB) *LoginAuditRepository {
	return &LoginAuditRepository{db: db}
}

// Create inserts a sign-in record
func (r *LoginAuditRepository) Create(audit *models.LoginAudit) error {
	_, err := r.db.Exec(
		`INSERT INTO login_audits (user_id, email, ip_address, browser, os_name, mobile)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		audit.UserID, audit.Email, audit.IPAddress, audit.Browser, audit.OSName, audit.Mobile)
	if err != nil {
		return fmt.Errorf("failed to create login audit: %w", err)
	}
	return nil
}
