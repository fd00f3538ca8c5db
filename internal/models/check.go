package models

import (
	"errors"
	"fmt"
	"time"
)

// CheckAction is one of the three recorded actions in the check lifecycle.
type CheckAction string

const (
	CheckActionRegistration CheckAction = "registration"
	CheckActionCheckIn      CheckAction = "check-in"
	CheckActionCheckOut     CheckAction = "check-out"
)

// ParseCheckAction converts a raw string into a CheckAction.
func ParseCheckAction(s string) (CheckAction, error) {
	switch CheckAction(s) {
	case CheckActionRegistration, CheckActionCheckIn, CheckActionCheckOut:
		return CheckAction(s), nil
	}
	return "", fmt.Errorf("invalid check action: %q", s)
}

// Valid reports whether the action belongs to the closed set.
func (a CheckAction) Valid() bool {
	_, err := ParseCheckAction(string(a))
	return err == nil
}

// Lifecycle rejections. These are user-visible validation outcomes, never
// retried.
var (
	// ErrNotCredentialed rejects check-in/check-out before registration.
	ErrNotCredentialed = errors.New("staff not yet credentialed (registration required)")

	// ErrAlreadyCredentialed rejects a second registration for the same
	// events_staff binding.
	ErrAlreadyCredentialed = errors.New("staff already credentialed for this event")
)

// ValidateCheckTransition enforces the transition table for a single
// events_staff binding:
//
//	unregistered + registration        -> ok
//	unregistered + check-in/check-out  -> ErrNotCredentialed
//	registered   + registration       -> ErrAlreadyCredentialed
//	registered   + check-in/check-out -> ok (repeatable, no alternation rule)
func ValidateCheckTransition(action CheckAction, registered bool) error {
	switch action {
	case CheckActionRegistration:
		if registered {
			return ErrAlreadyCredentialed
		}
	case CheckActionCheckIn, CheckActionCheckOut:
		if !registered {
			return ErrNotCredentialed
		}
	default:
		return fmt.Errorf("invalid check action: %q", action)
	}
	return nil
}

// Check is an immutable audit record of one credentialing or attendance
// action. The timestamp is assigned by the database at insert time and rows
// are never updated or deleted.
type Check struct {
	ID            int64       `json:"id" db:"id"`
	Action        CheckAction `json:"action" db:"action"`
	Timestamp     time.Time   `json:"timestamp" db:"timestamp"`
	EventsStaffID string      `json:"events_staff" db:"events_staff_id"`
	UserControlID NullInt64   `json:"user_control,omitempty" db:"user_control_id"`
}

// CheckInput is the payload for submitting a check action.
type CheckInput struct {
	Action      CheckAction `json:"action" binding:"required"`
	EventsStaff string      `json:"events_staff" binding:"required"`
}
