package database

import (
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// EventsCompanyRepository handles event participation records
type EventsCompanyRepository struct {
	db DB
}

// NewEventsCompanyRepository creates a new events company repository
func NewEventsCompanyRepository(db DB) *EventsCompanyRepository {
	return &EventsCompanyRepository{db: db}
}

// Add binds a company to an event with a role and a staff quota.
func (r *EventsCompanyRepository) Add(eventID int64, input *models.EventsCompanyInput) (*models.EventsCompany, error) {
	staffLimit := input.StaffLimit
	if staffLimit < 1 {
		staffLimit = 1
	}

	var ec models.EventsCompany
	err := r.db.QueryRow(
		`INSERT INTO events_company (event_id, company_id, role, staff_limit)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		eventID, input.CompanyID, input.Role, staffLimit,
	).Scan(&ec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add company to event: %w", err)
	}

	ec.EventID = eventID
	ec.CompanyID = input.CompanyID
	ec.Role = input.Role
	ec.StaffLimit = staffLimit
	return &ec, nil
}

// ListByEvent retrieves the companies participating in an event
func (r *EventsCompanyRepository) ListByEvent(eventID int64) ([]*models.EventsCompany, error) {
	var participants []*models.EventsCompany
	err := r.db.Select(&participants,
		`SELECT id, event_id, company_id, role, staff_limit
		 FROM events_company
		 WHERE event_id = $1
		 ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event companies: %w", err)
	}
	return participants, nil
}

// Remove unbinds a company from an event
func (r *EventsCompanyRepository) Remove(eventID, companyID int64) error {
	result, err := r.db.Exec(
		`DELETE FROM events_company WHERE event_id = $1 AND company_id = $2`, eventID, companyID)
	if err != nil {
		return fmt.Errorf("failed to remove company from event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
