package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eventops/staffing-backend/internal/models"
)

// CheckRepository persists the check audit log and drives the credentialing
// lifecycle of events_staff bindings. Check rows are append-only: there is
// no update or delete here by design.
type CheckRepository struct {
	db *sqlx.DB
}

// NewCheckRepository creates a new check repository
func NewCheckRepository(db *sqlx.DB) *CheckRepository {
	return &CheckRepository{db: db}
}

// Submit records one check action for an events_staff binding.
//
// The whole sequence runs in a single transaction: the binding row is locked
// (SELECT ... FOR UPDATE) so concurrent submissions for the same binding
// serialize on the state check, the transition table is enforced against the
// locked state, the check row is inserted with a database-assigned
// timestamp, and a registration additionally sets the binding's
// registration_check_id. Either everything commits or nothing does.
//
// A partial unique index on checks (one registration per binding) backs the
// application check: if a competing transaction wins the registration race
// anyway, the insert fails with a unique violation and is surfaced as
// models.ErrAlreadyCredentialed.
func (r *CheckRepository) Submit(action models.CheckAction, eventsStaffID string, actingUserID int64) (*models.Check, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var regCheck sql.NullInt64
	err = tx.Get(&regCheck, `SELECT registration_check_id FROM events_staff WHERE id = $1 FOR UPDATE`, eventsStaffID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load events staff: %w", err)
	}

	if err := models.ValidateCheckTransition(action, regCheck.Valid); err != nil {
		return nil, err
	}

	check := &models.Check{
		Action:        action,
		EventsStaffID: eventsStaffID,
		UserControlID: models.SomeInt64(actingUserID),
	}
	err = tx.QueryRow(
		`INSERT INTO checks (action, events_staff_id, user_control_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, timestamp`,
		action, eventsStaffID, actingUserID,
	).Scan(&check.ID, &check.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrAlreadyCredentialed
		}
		return nil, fmt.Errorf("failed to insert check: %w", err)
	}

	if action == models.CheckActionRegistration {
		if _, err := tx.Exec(`UPDATE events_staff SET registration_check_id = $1 WHERE id = $2`, check.ID, eventsStaffID); err != nil {
			return nil, fmt.Errorf("failed to set registration check: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check: %w", err)
	}

	return check, nil
}

// LatestAction returns the action of the most recent check for the binding,
// or empty string when no check exists yet. Ties on timestamp break by
// insertion order (id), never by re-reading mutable state.
func (r *CheckRepository) LatestAction(eventsStaffID string) (models.CheckAction, error) {
	var action models.CheckAction
	err := r.db.Get(&action,
		`SELECT action FROM checks
		 WHERE events_staff_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1`,
		eventsStaffID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest check: %w", err)
	}
	return action, nil
}

// List returns checks ordered newest first.
func (r *CheckRepository) List(limit, offset int) ([]*models.Check, error) {
	var checks []*models.Check
	err := r.db.Select(&checks,
		`SELECT id, action, timestamp, events_staff_id, user_control_id
		 FROM checks
		 ORDER BY timestamp DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}

// ListByEventsStaff returns the full check history of one binding, newest
// first.
func (r *CheckRepository) ListByEventsStaff(eventsStaffID string) ([]*models.Check, error) {
	var checks []*models.Check
	err := r.db.Select(&checks,
		`SELECT id, action, timestamp, events_staff_id, user_control_id
		 FROM checks
		 WHERE events_staff_id = $1
		 ORDER BY timestamp DESC, id DESC`,
		eventsStaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks for events staff: %w", err)
	}
	return checks, nil
}
