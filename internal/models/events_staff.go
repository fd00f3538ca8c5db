package models

import "time"

// EventsStaff binds one staff member to one event. The staff CPF is copied
// at creation time so the link survives later edits to the staff record;
// uniqueness is enforced per (event, staff_cpf).
//
// RegistrationCheck is set exactly once, by a successful registration
// submission, and is the marker that the staff member is credentialed.
type EventsStaff struct {
	ID                  string    `json:"id" db:"id"`
	EventID             int64     `json:"event" db:"event_id"`
	StaffID             int64     `json:"staff" db:"staff_id"`
	StaffCPF            string    `json:"staff_cpf" db:"staff_cpf"`
	RegistrationCheckID NullInt64 `json:"registration_check,omitempty" db:"registration_check_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	CreatedBy           NullInt64 `json:"created_by,omitempty" db:"created_by"`
}

// Registered reports whether the binding has been credentialed.
func (es *EventsStaff) Registered() bool {
	return es.RegistrationCheckID.Valid
}

// EventsStaffControl is the roster row used by control operators at the
// event gate: identity plus derived credential/attendance state.
type EventsStaffControl struct {
	ID                  string     `json:"id" db:"id"`
	StaffName           string     `json:"staff_name" db:"staff_name"`
	StaffCPF            string     `json:"staff_cpf" db:"staff_cpf"`
	RegistrationCheckID NullInt64  `json:"registration_check,omitempty" db:"registration_check_id"`
	IsRegistered        bool       `json:"is_registered" db:"is_registered"`
	LastStatus          NullString `json:"last_status,omitempty" db:"last_status"`
}
