package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/permissions"
	"github.com/eventops/staffing-backend/pkg/validator"
)

// StaffImportEntry is one row of a bulk staff import.
type StaffImportEntry struct {
	CPF  string `json:"cpf" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// StaffImportService links batches of staff to an event: staff records are
// upserted by (company, cpf) and event bindings created by (event, cpf).
type StaffImportService struct {
	events      *database.EventRepository
	staffs      *database.StaffRepository
	eventsStaff *database.EventsStaffRepository
	documents   *validator.DocumentValidator
	logger      *logrus.Logger
}

// NewStaffImportService creates a new staff import service
func NewStaffImportService(
	events *database.EventRepository,
	staffs *database.StaffRepository,
	eventsStaff *database.EventsStaffRepository,
	documents *validator.DocumentValidator,
	logger *logrus.Logger,
) *StaffImportService {
	return &StaffImportService{
		events:      events,
		staffs:      staffs,
		eventsStaff: eventsStaff,
		documents:   documents,
		logger:      logger,
	}
}

// Import upserts each entry's staff record under the acting user's company
// and links it to the event, returning the number of newly created links.
// The event must exist (database.ErrNotFound) and must be owned by the
// caller's company (ErrEventNotOwned).
func (s *StaffImportService) Import(eventID int64, actingUser *models.User, entries []StaffImportEntry) (int, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return 0, err
	}

	if !event.CompanyID.Valid || !permissions.OwnsCompanyResource(actingUser, event.CompanyID.Int64) {
		return 0, ErrEventNotOwned
	}
	companyID := actingUser.CompanyID.Int64

	created := 0
	for _, entry := range entries {
		cpf, err := s.documents.ValidateCPF(entry.CPF)
		if err != nil {
			return created, fmt.Errorf("entry %q: %w", entry.Name, err)
		}

		staff, err := s.staffs.Upsert(entry.Name, cpf, companyID, actingUser.ID)
		if err != nil {
			return created, err
		}

		linked, err := s.eventsStaff.LinkIfAbsent(eventID, staff, actingUser.ID)
		if err != nil {
			return created, err
		}
		if linked {
			created++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"event":   eventID,
		"company": companyID,
		"entries": len(entries),
		"created": created,
	}).Info("Staff bulk import completed")
	return created, nil
}
