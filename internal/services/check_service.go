package services

import (
	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/models"
)

// CheckStore is the persistence surface of the check lifecycle. Implemented
// by database.CheckRepository; injected so the engine never touches ambient
// global state.
type CheckStore interface {
	Submit(action models.CheckAction, eventsStaffID string, actingUserID int64) (*models.Check, error)
	LatestAction(eventsStaffID string) (models.CheckAction, error)
	List(limit, offset int) ([]*models.Check, error)
	ListByEventsStaff(eventsStaffID string) ([]*models.Check, error)
}

// CheckService is the check lifecycle engine entry point. Role enforcement
// happens before it is invoked (permission gate in the handlers); the
// service owns input validation and the audit trail of submissions.
type CheckService struct {
	store  CheckStore
	logger *logrus.Logger
}

// NewCheckService creates a new check service
func NewCheckService(store CheckStore, logger *logrus.Logger) *CheckService {
	return &CheckService{store: store, logger: logger}
}

// Submit validates and records one check action. Rejections are terminal
// for the request: nothing is persisted and nothing is retried.
func (s *CheckService) Submit(action models.CheckAction, eventsStaffID string, actingUserID int64) (*models.Check, error) {
	if _, err := models.ParseCheckAction(string(action)); err != nil {
		return nil, err
	}

	check, err := s.store.Submit(action, eventsStaffID, actingUserID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"action":       action,
			"events_staff": eventsStaffID,
			"user":         actingUserID,
		}).WithError(err).Info("Check submission rejected")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"check":        check.ID,
		"action":       check.Action,
		"events_staff": check.EventsStaffID,
		"user":         actingUserID,
	}).Info("Check recorded")
	return check, nil
}

// CurrentStatus returns the action of the most recent check for a binding,
// or empty string when none exists.
func (s *CheckService) CurrentStatus(eventsStaffID string) (models.CheckAction, error) {
	return s.store.LatestAction(eventsStaffID)
}

// List returns checks newest first.
func (s *CheckService) List(limit, offset int) ([]*models.Check, error) {
	return s.store.List(limit, offset)
}

// History returns the full check history of one binding, newest first.
func (s *CheckService) History(eventsStaffID string) ([]*models.Check, error) {
	return s.store.ListByEventsStaff(eventsStaffID)
}
