package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventops/staffing-backend/internal/models"
)

// EventRepository handles event database operations
type EventRepository struct {
	db DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.name, e.description, e.location, e.date_begin, e.date_end,
	e.status, e.project_id, e.created_at, e.created_by`

// Create inserts an event
func (r *EventRepository) Create(input *models.EventInput, createdBy int64) (*models.Event, error) {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	var event models.Event
	err := r.db.QueryRow(
		`INSERT INTO events (name, description, location, date_begin, date_end, status, project_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		input.Name, input.Description, input.Location, input.DateBegin, input.DateEnd,
		status, input.ProjectID, createdBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	event.Name = input.Name
	event.Description = input.Description
	event.Location = input.Location
	event.DateBegin = input.DateBegin
	event.DateEnd = input.DateEnd
	event.Status = status
	if input.ProjectID != nil {
		event.ProjectID = models.SomeInt64(*input.ProjectID)
	}
	event.CreatedBy = models.SomeInt64(createdBy)
	return &event, nil
}

// GetByID retrieves an event with the owning company resolved through its
// project.
func (r *EventRepository) GetByID(id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.Get(&event,
		`SELECT `+eventColumns+`, p.company_id AS company_id
		 FROM events e
		 LEFT JOIN projects p ON p.id = e.project_id
		 WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	return &event, nil
}

// List retrieves all events
func (r *EventRepository) List() ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.Select(&events,
		`SELECT `+eventColumns+`, p.company_id AS company_id
		 FROM events e
		 LEFT JOIN projects p ON p.id = e.project_id
		 ORDER BY e.date_begin DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListByCompany retrieves the events whose project belongs to the company
func (r *EventRepository) ListByCompany(companyID int64) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.Select(&events,
		`SELECT `+eventColumns+`, p.company_id AS company_id
		 FROM events e
		 JOIN projects p ON p.id = e.project_id
		 WHERE p.company_id = $1
		 ORDER BY e.date_begin DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by company: %w", err)
	}
	return events, nil
}

// Overview returns the aggregate view of one event.
func (r *EventRepository) Overview(id int64) (*models.EventOverview, error) {
	var overview models.EventOverview
	err := r.db.Get(&overview,
		`SELECT e.name, e.status,
			(SELECT COUNT(*) FROM events_staff es WHERE es.event_id = e.id) AS total_staff
		 FROM events e
		 WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event overview: %w", err)
	}
	return &overview, nil
}

// Update changes an event's mutable fields
func (r *EventRepository) Update(id int64, input *models.EventInput) error {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	result, err := r.db.Exec(
		`UPDATE events
		 SET name = $1, description = $2, location = $3, date_begin = $4, date_end = $5,
		     status = $6, project_id = $7
		 WHERE id = $8`,
		input.Name, input.Description, input.Location, input.DateBegin, input.DateEnd,
		status, input.ProjectID, id)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
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

// Delete removes an event; staff links and checks cascade per the schema.
func (r *EventRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
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
