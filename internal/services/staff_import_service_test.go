package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/pkg/validator"
)

var eventColumns = []string{
	"id", "name", "description", "location", "date_begin", "date_end",
	"status", "project_id", "created_at", "created_by", "company_id",
}

func newImportService(t *testing.T) (*StaffImportService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, cleanup := newMockDB(t)
	service := NewStaffImportService(
		database.NewEventRepository(db),
		database.NewStaffRepository(db),
		database.NewEventsStaffRepository(db),
		validator.NewDocumentValidator(),
		testLogger(),
	)
	return service, mock, cleanup
}

func expectEventLookup(mock sqlmock.Sqlmock, eventID, companyID int64) {
	now := time.Now()
	mock.ExpectQuery(`FROM events e`).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(eventID, "Main Stage", "", "Arena", now, now.Add(8*time.Hour),
				"open", int64(1), now, int64(1), companyID))
}

func companyUser(companyID int64) *models.User {
	return &models.User{ID: 2, Role: models.RoleCompany, CompanyID: models.SomeInt64(companyID)}
}

func TestImportStaff(t *testing.T) {
	t.Run("Counts Only New Links", func(t *testing.T) {
		service, mock, cleanup := newImportService(t)
		defer cleanup()

		now := time.Now()
		expectEventLookup(mock, 5, 3)

		// First entry: staff upserted and freshly linked.
		mock.ExpectQuery(`INSERT INTO staffs`).
			WithArgs("Ana Souza", "12345678901", int64(3), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}).
				AddRow(int64(10), "Ana Souza", "12345678901", int64(3), now, int64(2)))
		mock.ExpectExec(`INSERT INTO events_staff`).
			WithArgs(sqlmock.AnyArg(), int64(5), int64(10), "12345678901", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Second entry: already linked to the event.
		mock.ExpectQuery(`INSERT INTO staffs`).
			WithArgs("Beto Lima", "98765432100", int64(3), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}).
				AddRow(int64(11), "Beto Lima", "98765432100", int64(3), now, int64(2)))
		mock.ExpectExec(`INSERT INTO events_staff`).
			WithArgs(sqlmock.AnyArg(), int64(5), int64(11), "98765432100", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := service.Import(5, companyUser(3), []StaffImportEntry{
			{CPF: "123.456.789-01", Name: "Ana Souza"},
			{CPF: "987.654.321-00", Name: "Beto Lima"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Event Owned By Another Company", func(t *testing.T) {
		service, mock, cleanup := newImportService(t)
		defer cleanup()

		expectEventLookup(mock, 5, 4)

		created, err := service.Import(5, companyUser(3), []StaffImportEntry{
			{CPF: "12345678901", Name: "Ana Souza"},
		})
		assert.ErrorIs(t, err, ErrEventNotOwned)
		assert.Zero(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Admin Bypass", func(t *testing.T) {
		service, mock, cleanup := newImportService(t)
		defer cleanup()

		expectEventLookup(mock, 5, 3)

		admin := &models.User{ID: 1, Role: models.RoleAdmin}
		created, err := service.Import(5, admin, []StaffImportEntry{
			{CPF: "12345678901", Name: "Ana Souza"},
		})
		assert.ErrorIs(t, err, ErrEventNotOwned)
		assert.Zero(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Event", func(t *testing.T) {
		service, mock, cleanup := newImportService(t)
		defer cleanup()

		mock.ExpectQuery(`FROM events e`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		created, err := service.Import(99, companyUser(3), []StaffImportEntry{
			{CPF: "12345678901", Name: "Ana Souza"},
		})
		assert.ErrorIs(t, err, database.ErrNotFound)
		assert.Zero(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid CPF Stops The Batch", func(t *testing.T) {
		service, mock, cleanup := newImportService(t)
		defer cleanup()

		expectEventLookup(mock, 5, 3)

		created, err := service.Import(5, companyUser(3), []StaffImportEntry{
			{CPF: "1234", Name: "Ana Souza"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CPF")
		assert.Zero(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
