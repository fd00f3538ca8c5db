package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/permissions"
	"github.com/eventops/staffing-backend/internal/services"
)

const (
	defaultCheckPageSize = 50
	maxCheckPageSize     = 200
)

// CheckHandler handles the credentialing and attendance endpoints
type CheckHandler struct {
	checkService *services.CheckService
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(checkService *services.CheckService) *CheckHandler {
	return &CheckHandler{checkService: checkService}
}

// Submit handles POST /api/v1/checks
func (h *CheckHandler) Submit(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanSubmitCheck(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to submit checks",
		})
		return
	}

	var input models.CheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	check, err := h.checkService.Submit(input.Action, input.EventsStaff, userCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Events staff binding not found",
			})
		case errors.Is(err, models.ErrNotCredentialed):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "not_credentialed",
				Message: err.Error(),
			})
		case errors.Is(err, models.ErrAlreadyCredentialed):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "already_credentialed",
				Message: err.Error(),
			})
		case !input.Action.Valid():
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_action",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to record check",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, check)
}

// List handles GET /api/v1/checks
func (h *CheckHandler) List(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanReadChecks(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to read checks",
		})
		return
	}

	limit := parsePositiveQuery(c, "limit", defaultCheckPageSize)
	if limit > maxCheckPageSize {
		limit = maxCheckPageSize
	}
	offset := parsePositiveQuery(c, "offset", 0)

	checks, err := h.checkService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list checks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checks": checks, "count": len(checks)})
}

// Status handles GET /api/v1/events-staff/:id/status
func (h *CheckHandler) Status(c *gin.Context) {
	eventsStaffID := c.Param("id")

	action, err := h.checkService.CurrentStatus(eventsStaffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to resolve status",
		})
		return
	}

	if action == "" {
		c.JSON(http.StatusOK, gin.H{"events_staff": eventsStaffID, "last_status": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events_staff": eventsStaffID, "last_status": action})
}

// History handles GET /api/v1/events-staff/:id/checks
func (h *CheckHandler) History(c *gin.Context) {
	eventsStaffID := c.Param("id")

	checks, err := h.checkService.History(eventsStaffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list checks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events_staff": eventsStaffID, "checks": checks, "count": len(checks)})
}

func parsePositiveQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
