package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventops/staffing-backend/internal/models"
)

// EventsStaffRepository handles staff-to-event bindings
type EventsStaffRepository struct {
	db DB
}

// NewEventsStaffRepository creates a new events staff repository
func NewEventsStaffRepository(db DB) *EventsStaffRepository {
	return &EventsStaffRepository{db: db}
}

const eventsStaffColumns = `id, event_id, staff_id, staff_cpf, registration_check_id, created_at, created_by`

// LinkIfAbsent creates the binding between a staff member and an event,
// copying the staff CPF into the row. When the (event, cpf) pair is already
// linked nothing changes and created is false.
func (r *EventsStaffRepository) LinkIfAbsent(eventID int64, staff *models.Staff, createdBy int64) (created bool, err error) {
	result, err := r.db.Exec(
		`INSERT INTO events_staff (id, event_id, staff_id, staff_cpf, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (event_id, staff_cpf) DO NOTHING`,
		uuid.NewString(), eventID, staff.ID, staff.CPF, createdBy)
	if err != nil {
		return false, fmt.Errorf("failed to link staff to event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// GetByID retrieves a binding by ID
func (r *EventsStaffRepository) GetByID(id string) (*models.EventsStaff, error) {
	var es models.EventsStaff
	err := r.db.Get(&es, `SELECT `+eventsStaffColumns+` FROM events_staff WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events staff: %w", err)
	}
	return &es, nil
}

// ListControlByEvent returns the control roster for an event: one row per
// binding with the staff name and the derived credential state. The last
// status comes from the newest check, ties broken by insertion order.
func (r *EventsStaffRepository) ListControlByEvent(eventID int64) ([]*models.EventsStaffControl, error) {
	var roster []*models.EventsStaffControl
	err := r.db.Select(&roster,
		`SELECT es.id, s.name AS staff_name, es.staff_cpf, es.registration_check_id,
			(es.registration_check_id IS NOT NULL) AS is_registered,
			lc.action AS last_status
		 FROM events_staff es
		 JOIN staffs s ON s.id = es.staff_id
		 LEFT JOIN LATERAL (
			SELECT c.action FROM checks c
			WHERE c.events_staff_id = es.id
			ORDER BY c.timestamp DESC, c.id DESC
			LIMIT 1
		 ) lc ON TRUE
		 WHERE es.event_id = $1
		 ORDER BY s.name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event roster: %w", err)
	}
	return roster, nil
}
