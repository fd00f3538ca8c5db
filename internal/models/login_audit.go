package models

import "time"

// LoginAudit records one successful sign-in, with the client fingerprint
// parsed from the User-Agent header.
type LoginAudit struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Email     string     `json:"email" db:"email"`
	IPAddress NullString `json:"ip_address,omitempty" db:"ip_address"`
	Browser   NullString `json:"browser,omitempty" db:"browser"`
	OSName    NullString `json:"os_name,omitempty" db:"os_name"`
	Mobile    bool       `json:"mobile" db:"mobile"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
