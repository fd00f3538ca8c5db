package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/staffing-backend/internal/models"
)

type fakeCheckStore struct {
	submitted []models.CheckAction
	submitErr error
	latest    models.CheckAction
}

func (f *fakeCheckStore) Submit(action models.CheckAction, eventsStaffID string, actingUserID int64) (*models.Check, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, action)
	return &models.Check{ID: int64(len(f.submitted)), Action: action, EventsStaffID: eventsStaffID}, nil
}

func (f *fakeCheckStore) LatestAction(eventsStaffID string) (models.CheckAction, error) {
	return f.latest, nil
}

func (f *fakeCheckStore) List(limit, offset int) ([]*models.Check, error) {
	return nil, nil
}

func (f *fakeCheckStore) ListByEventsStaff(eventsStaffID string) ([]*models.Check, error) {
	return nil, nil
}

func TestCheckServiceSubmit(t *testing.T) {
	t.Run("Delegates Valid Actions", func(t *testing.T) {
		store := &fakeCheckStore{}
		service := NewCheckService(store, testLogger())

		check, err := service.Submit(models.CheckActionRegistration, "binding-a", 7)
		require.NoError(t, err)
		assert.Equal(t, models.CheckActionRegistration, check.Action)
		assert.Equal(t, []models.CheckAction{models.CheckActionRegistration}, store.submitted)
	})

	t.Run("Rejects Unknown Action Before Storage", func(t *testing.T) {
		store := &fakeCheckStore{}
		service := NewCheckService(store, testLogger())

		check, err := service.Submit(models.CheckAction("badge"), "binding-a", 7)
		assert.Error(t, err)
		assert.Nil(t, check)
		assert.Empty(t, store.submitted)
	})

	t.Run("Propagates Lifecycle Rejections", func(t *testing.T) {
		store := &fakeCheckStore{submitErr: models.ErrNotCredentialed}
		service := NewCheckService(store, testLogger())

		check, err := service.Submit(models.CheckActionCheckIn, "binding-a", 7)
		assert.ErrorIs(t, err, models.ErrNotCredentialed)
		assert.Nil(t, check)
	})

	t.Run("Propagates Storage Errors", func(t *testing.T) {
		store := &fakeCheckStore{submitErr: fmt.Errorf("database error")}
		service := NewCheckService(store, testLogger())

		_, err := service.Submit(models.CheckActionCheckOut, "binding-a", 7)
		assert.Error(t, err)
	})
}

func TestCheckServiceCurrentStatus(t *testing.T) {
	store := &fakeCheckStore{latest: models.CheckActionCheckIn}
	service := NewCheckService(store, testLogger())

	action, err := service.CurrentStatus("binding-a")
	require.NoError(t, err)
	assert.Equal(t, models.CheckActionCheckIn, action)
}
