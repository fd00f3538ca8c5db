package services

import (
	"errors"
	"fmt"
)

// ErrInvalidGoogleToken covers any identity-provider verification failure.
// Surfaced as a generic invalid-credential response; the caller must
// re-authenticate.
var ErrInvalidGoogleToken = errors.New("invalid google token")

// ErrInvalidRefreshToken means the presented refresh token failed
// validation (bad signature, wrong type or expired).
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrUserNotFound means the verified email has no account here.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailMismatch means the invite is restricted to a different email.
var ErrEmailMismatch = errors.New("email does not match invite restriction")

// ErrEventNotOwned means the event's owning company is not the caller's.
var ErrEventNotOwned = errors.New("permission denied for this event")

// InviteStateError reports an invite that is not pending (used or expired).
type InviteStateError struct {
	Status string
}

func (e *InviteStateError) Error() string {
	return fmt.Sprintf("invite is %s", e.Status)
}
