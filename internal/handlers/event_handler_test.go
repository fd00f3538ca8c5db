package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/services"
	"github.com/eventops/staffing-backend/pkg/validator"
)

var eventColumns = []string{
	"id", "name", "description", "location", "date_begin", "date_end",
	"status", "project_id", "created_at", "created_by", "company_id",
}

func eventRouter(db *database.PostgresDB, userCtx middleware.UserContext) *gin.Engine {
	gin.SetMode(gin.TestMode)

	importService := services.NewStaffImportService(
		database.NewEventRepository(db),
		database.NewStaffRepository(db),
		database.NewEventsStaffRepository(db),
		validator.NewDocumentValidator(),
		testLogger(),
	)
	handler := NewEventHandler(
		database.NewEventRepository(db),
		database.NewEventsCompanyRepository(db),
		database.NewEventsStaffRepository(db),
		importService,
	)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userCtx)
		c.Next()
	})
	router.PUT("/events/:id", handler.Update)
	router.POST("/events/:id/staff/bulk", handler.ImportStaff)
	return router
}

func companyUserContext(companyID int64) middleware.UserContext {
	return middleware.UserContext{
		UserID:    2,
		Email:     "ana@example.com",
		Role:      models.RoleCompany,
		CompanyID: &companyID,
	}
}

func TestImportStaffEndpoint(t *testing.T) {
	t.Run("Accepts Staffs Payload", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`FROM events e`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(5), "Main Stage", "", "Arena", now, now.Add(8*time.Hour),
					"open", int64(1), now, int64(1), int64(3)))
		mock.ExpectQuery(`INSERT INTO staffs`).
			WithArgs("Ana Souza", "12345678901", int64(3), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cpf", "company_id", "created_at", "created_by"}).
				AddRow(int64(10), "Ana Souza", "12345678901", int64(3), now, int64(2)))
		mock.ExpectExec(`INSERT INTO events_staff`).
			WithArgs(sqlmock.AnyArg(), int64(5), int64(10), "12345678901", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/5/staff/bulk",
			strings.NewReader(`{"staffs":[{"cpf":"123.456.789-01","name":"Ana Souza"}]}`))
		req.Header.Set("Content-Type", "application/json")
		eventRouter(db, companyUserContext(3)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"created":1`)
		assert.Contains(t, w.Body.String(), `"received":1`)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejects Unknown Payload Key", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/5/staff/bulk",
			strings.NewReader(`{"staff":[{"cpf":"123.456.789-01","name":"Ana Souza"}]}`))
		req.Header.Set("Content-Type", "application/json")
		eventRouter(db, companyUserContext(3)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateEventEndpoint(t *testing.T) {
	t.Run("Inverted Window", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/events/5",
			strings.NewReader(`{"name":"Main Stage","date_begin":"2026-09-02T10:00:00Z","date_end":"2026-09-01T10:00:00Z"}`))
		req.Header.Set("Content-Type", "application/json")
		eventRouter(db, companyUserContext(3)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
