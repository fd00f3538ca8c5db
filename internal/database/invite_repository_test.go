package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/staffing-backend/internal/models"
)

func pendingInvite() *models.UserInvite {
	return &models.UserInvite{
		ID:        "5e3a1f5c-0b44-4f9a-9b0a-1a2b3c4d5e6f",
		CompanyID: 3,
		Role:      models.RoleCompany,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedBy: models.SomeInt64(1),
	}
}

func TestCreateInvite(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewInviteRepository(db.DB)

	mock.ExpectQuery(`INSERT INTO user_invites`).
		WithArgs(sqlmock.AnyArg(), int64(3), sqlmock.AnyArg(), models.RoleControl, sqlmock.AnyArg(), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	invite, err := repo.Create(3, "gate@example.com", models.RoleControl, 72*time.Hour, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, invite.ID)
	assert.Equal(t, models.RoleControl, invite.Role)
	assert.Equal(t, models.InviteStatusPending, invite.Status())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInviteUnknownCompany(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewInviteRepository(db.DB)

	mock.ExpectQuery(`INSERT INTO user_invites`).
		WithArgs(sqlmock.AnyArg(), int64(99), sqlmock.AnyArg(), models.RoleControl, sqlmock.AnyArg(), int64(1)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "user_invites_company_id_fkey"})

	invite, err := repo.Create(99, "", models.RoleControl, 72*time.Hour, 1)
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Nil(t, invite)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeInvite(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewInviteRepository(db.DB)

	t.Run("Success", func(t *testing.T) {
		invite := pendingInvite()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("Ana Souza", "ana@example.com", models.RoleCompany, int64(3), models.SomeInt64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "company_id", "is_active", "created_at", "created_by"}).
				AddRow(int64(21), "Ana Souza", "ana@example.com", "company", int64(3), true, now, int64(1)))
		mock.ExpectExec(`UPDATE user_invites SET used_by`).
			WithArgs(int64(21), invite.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		user, err := repo.Consume(invite, "Ana Souza", "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(21), user.ID)
		assert.Equal(t, models.RoleCompany, user.Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Slot Already Taken", func(t *testing.T) {
		// A concurrent registration committed first: the conditional
		// update matches zero rows and everything rolls back.
		invite := pendingInvite()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("Beto Lima", "beto@example.com", models.RoleCompany, int64(3), models.SomeInt64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "company_id", "is_active", "created_at", "created_by"}).
				AddRow(int64(22), "Beto Lima", "beto@example.com", "company", int64(3), true, now, int64(1)))
		mock.ExpectExec(`UPDATE user_invites SET used_by`).
			WithArgs(int64(22), invite.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		user, err := repo.Consume(invite, "Beto Lima", "beto@example.com")
		assert.ErrorIs(t, err, ErrInviteConsumed)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInviteStatus(t *testing.T) {
	t.Run("Pending", func(t *testing.T) {
		assert.Equal(t, models.InviteStatusPending, pendingInvite().Status())
	})

	t.Run("Expired", func(t *testing.T) {
		invite := pendingInvite()
		invite.ExpiresAt = time.Now().Add(-time.Minute)
		assert.Equal(t, models.InviteStatusExpired, invite.Status())
	})

	t.Run("Used Wins Over Expired", func(t *testing.T) {
		invite := pendingInvite()
		invite.ExpiresAt = time.Now().Add(-time.Minute)
		invite.UsedBy = models.SomeInt64(21)
		assert.Equal(t, models.InviteStatusUsed, invite.Status())
	})
}
