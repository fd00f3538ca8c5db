package models

// EventsCompany binds a company to an event with a role and a staff quota.
// Unique per (event, company).
type EventsCompany struct {
	ID         int64       `json:"id" db:"id"`
	EventID    int64       `json:"event" db:"event_id"`
	CompanyID  int64       `json:"company" db:"company_id"`
	Role       CompanyRole `json:"role" db:"role"`
	StaffLimit int         `json:"staff_limit" db:"staff_limit"`
}

// EventsCompanyInput is the payload for adding a company to an event.
type EventsCompanyInput struct {
	CompanyID  int64       `json:"company" binding:"required"`
	Role       CompanyRole `json:"role" binding:"required"`
	StaffLimit int         `json:"staff_limit"`
}
