package models

import "time"

// Invite status values computed from the record, never stored.
const (
	InviteStatusPending = "pending"
	InviteStatusUsed    = "used"
	InviteStatusExpired = "expired"
)

// UserInvite is a time-limited, single-use slot for provisioning a new user.
// The ID doubles as the invite token handed out to the invitee.
type UserInvite struct {
	ID        string    `json:"id" db:"id"`
	CompanyID int64     `json:"company" db:"company_id"`
	Email     NullString `json:"email,omitempty" db:"email"`
	Role      Role      `json:"role" db:"role"`
	UsedBy    NullInt64 `json:"used_by,omitempty" db:"used_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedBy NullInt64 `json:"created_by,omitempty" db:"created_by"`
}

// Status derives the invite state: used wins over expired, expired over
// pending.
func (i *UserInvite) Status() string {
	if i.UsedBy.Valid {
		return InviteStatusUsed
	}
	if !i.ExpiresAt.After(time.Now()) {
		return InviteStatusExpired
	}
	return InviteStatusPending
}

// InviteInput is the payload for issuing an invite.
type InviteInput struct {
	CompanyID int64  `json:"company" binding:"required"`
	Email     string `json:"email"`
	Role      Role   `json:"role" binding:"required"`
}
