package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStaff(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewStaffRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO staffs`).
			WithArgs("Ana Souza", "12345678901", int64(3), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}).
				AddRow(int64(10), "Ana Souza", "12345678901", int64(3), now, int64(1)))

		staff, err := repo.Create("Ana Souza", "12345678901", 3, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), staff.ID)
		assert.Equal(t, "12345678901", staff.CPF)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate CPF In Company", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO staffs`).
			WithArgs("Ana Souza", "12345678901", int64(3), int64(1)).
			WillReturnError(&pq.Error{Code: "23505"})

		staff, err := repo.Create("Ana Souza", "12345678901", 3, 1)
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Nil(t, staff)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertStaff(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewStaffRepository(db)

	t.Run("Refreshes Name On Conflict", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`ON CONFLICT \(company_id, cpf\) DO UPDATE`).
			WithArgs("Ana S. Souza", "12345678901", int64(3), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}).
				AddRow(int64(10), "Ana S. Souza", "12345678901", int64(3), now, int64(1)))

		staff, err := repo.Upsert("Ana S. Souza", "12345678901", 3, 1)
		require.NoError(t, err)
		assert.Equal(t, "Ana S. Souza", staff.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`ON CONFLICT \(company_id, cpf\) DO UPDATE`).
			WithArgs("Ana", "12345678901", int64(3), int64(1)).
			WillReturnError(fmt.Errorf("database error"))

		staff, err := repo.Upsert("Ana", "12345678901", 3, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert staff")
		assert.Nil(t, staff)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStaffByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewStaffRepository(db)

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM staffs WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}))

		staff, err := repo.GetByID(99)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, staff)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStaff(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewStaffRepository(db)

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE staffs SET name`).
			WithArgs("Ana", "12345678901", int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(99, "Ana", "12345678901")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
