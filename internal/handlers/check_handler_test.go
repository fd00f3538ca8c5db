package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/services"
)

type fakeCheckStore struct {
	submitErr error
	latest    models.CheckAction
	checks    []*models.Check
}

func (f *fakeCheckStore) Submit(action models.CheckAction, eventsStaffID string, actingUserID int64) (*models.Check, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.Check{ID: 42, Action: action, EventsStaffID: eventsStaffID, UserControlID: models.SomeInt64(actingUserID)}, nil
}

func (f *fakeCheckStore) LatestAction(eventsStaffID string) (models.CheckAction, error) {
	return f.latest, nil
}

func (f *fakeCheckStore) List(limit, offset int) ([]*models.Check, error) {
	return f.checks, nil
}

func (f *fakeCheckStore) ListByEventsStaff(eventsStaffID string) ([]*models.Check, error) {
	return f.checks, nil
}

func checkRouter(store *fakeCheckStore, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewCheckHandler(services.NewCheckService(store, logger))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{UserID: 7, Email: "ops@example.com", Role: role})
		c.Next()
	})
	router.POST("/checks", handler.Submit)
	router.GET("/checks", handler.List)
	router.GET("/events-staff/:id/status", handler.Status)
	router.GET("/events-staff/:id/checks", handler.History)
	return router
}

func TestSubmitCheckEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"registration","events_staff":"binding-a"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"registration"`)
	})

	t.Run("Company Role Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"registration","events_staff":"binding-a"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{}, models.RoleCompany).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks", strings.NewReader(`{"action":"check-in"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	t.Run("Unknown Action", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"badge","events_staff":"binding-a"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_action")
	})

	t.Run("Not Credentialed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"check-in","events_staff":"binding-a"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{submitErr: models.ErrNotCredentialed}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not_credentialed")
	})

	t.Run("Already Credentialed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"registration","events_staff":"binding-a"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{submitErr: models.ErrAlreadyCredentialed}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already_credentialed")
	})

	t.Run("Unknown Binding", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checks",
			strings.NewReader(`{"action":"registration","events_staff":"missing"}`))
		req.Header.Set("Content-Type", "application/json")
		checkRouter(&fakeCheckStore{submitErr: database.ErrNotFound}, models.RoleControl).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckStatusEndpoint(t *testing.T) {
	t.Run("With History", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events-staff/binding-a/status", nil)
		checkRouter(&fakeCheckStore{latest: models.CheckActionCheckOut}, models.RoleAdmin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"last_status":"check-out"`)
	})

	t.Run("No Checks Yet", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events-staff/binding-a/status", nil)
		checkRouter(&fakeCheckStore{}, models.RoleAdmin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"last_status":null`)
	})
}

func TestListChecksEndpoint(t *testing.T) {
	store := &fakeCheckStore{checks: []*models.Check{
		{ID: 2, Action: models.CheckActionCheckIn, EventsStaffID: "binding-a"},
		{ID: 1, Action: models.CheckActionRegistration, EventsStaffID: "binding-a"},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checks?limit=10", nil)
	checkRouter(store, models.RoleControl).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}
