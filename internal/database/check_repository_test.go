package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/staffing-backend/internal/models"
)

const testBindingID = "c7f1a9ce-8a3f-4a87-bb6a-6a3d6f6f2f10"

func TestSubmitRegistration(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewCheckRepository(db.DB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(nil))
		mock.ExpectQuery(`INSERT INTO checks`).
			WithArgs(models.CheckActionRegistration, testBindingID, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(42), now))
		mock.ExpectExec(`UPDATE events_staff SET registration_check_id`).
			WithArgs(int64(42), testBindingID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		check, err := repo.Submit(models.CheckActionRegistration, testBindingID, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(42), check.ID)
		assert.Equal(t, models.CheckActionRegistration, check.Action)
		assert.Equal(t, testBindingID, check.EventsStaffID)
		assert.Equal(t, models.SomeInt64(7), check.UserControlID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Credentialed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(int64(42)))
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionRegistration, testBindingID, 7)
		assert.ErrorIs(t, err, models.ErrAlreadyCredentialed)
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrent Registration Loses Race", func(t *testing.T) {
		// The row was unregistered when read, but a competing commit got
		// there first: the partial unique index rejects the insert.
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(nil))
		mock.ExpectQuery(`INSERT INTO checks`).
			WithArgs(models.CheckActionRegistration, testBindingID, int64(7)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_checks_registration"})
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionRegistration, testBindingID, 7)
		assert.ErrorIs(t, err, models.ErrAlreadyCredentialed)
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Binding", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}))
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionRegistration, "missing", 7)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmitAttendance(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewCheckRepository(db.DB)

	t.Run("Check In After Registration", func(t *testing.T) {
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(int64(42)))
		mock.ExpectQuery(`INSERT INTO checks`).
			WithArgs(models.CheckActionCheckIn, testBindingID, int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(43), now))
		mock.ExpectCommit()

		check, err := repo.Submit(models.CheckActionCheckIn, testBindingID, 9)
		require.NoError(t, err)
		assert.Equal(t, models.CheckActionCheckIn, check.Action)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Check In Before Registration", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(nil))
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionCheckIn, testBindingID, 9)
		assert.ErrorIs(t, err, models.ErrNotCredentialed)
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Check Out Before Registration", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(nil))
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionCheckOut, testBindingID, 9)
		assert.ErrorIs(t, err, models.ErrNotCredentialed)
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Repeated Check In Allowed", func(t *testing.T) {
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"registration_check_id"}).AddRow(int64(42)))
		mock.ExpectQuery(`INSERT INTO checks`).
			WithArgs(models.CheckActionCheckIn, testBindingID, int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(44), now))
		mock.ExpectCommit()

		check, err := repo.Submit(models.CheckActionCheckIn, testBindingID, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(44), check.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT registration_check_id FROM events_staff`).
			WithArgs(testBindingID).
			WillReturnError(fmt.Errorf("connection reset"))
		mock.ExpectRollback()

		check, err := repo.Submit(models.CheckActionCheckIn, testBindingID, 9)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load events staff")
		assert.Nil(t, check)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLatestAction(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewCheckRepository(db.DB)

	t.Run("Newest Wins", func(t *testing.T) {
		mock.ExpectQuery(`ORDER BY timestamp DESC, id DESC`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"action"}).AddRow("check-out"))

		action, err := repo.LatestAction(testBindingID)
		require.NoError(t, err)
		assert.Equal(t, models.CheckActionCheckOut, action)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Checks Yet", func(t *testing.T) {
		mock.ExpectQuery(`ORDER BY timestamp DESC, id DESC`).
			WithArgs(testBindingID).
			WillReturnRows(sqlmock.NewRows([]string{"action"}))

		action, err := repo.LatestAction(testBindingID)
		require.NoError(t, err)
		assert.Equal(t, models.CheckAction(""), action)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByEventsStaff(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewCheckRepository(db.DB)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, action, timestamp, events_staff_id, user_control_id`).
		WithArgs(testBindingID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "timestamp", "events_staff_id", "user_control_id"}).
			AddRow(int64(44), "check-in", now, testBindingID, int64(9)).
			AddRow(int64(42), "registration", now.Add(-time.Hour), testBindingID, int64(7)))

	checks, err := repo.ListByEventsStaff(testBindingID)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, models.CheckActionCheckIn, checks[0].Action)
	assert.Equal(t, models.CheckActionRegistration, checks[1].Action)

	assert.NoError(t, mock.ExpectationsWereMet())
}
