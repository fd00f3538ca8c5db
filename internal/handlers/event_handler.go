package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/permissions"
	"github.com/eventops/staffing-backend/internal/services"
)

// EventHandler handles event endpoints: CRUD, the aggregate overview, the
// control roster, company participation and the bulk staff import.
type EventHandler struct {
	events        *database.EventRepository
	eventsCompany *database.EventsCompanyRepository
	eventsStaff   *database.EventsStaffRepository
	importService *services.StaffImportService
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	events *database.EventRepository,
	eventsCompany *database.EventsCompanyRepository,
	eventsStaff *database.EventsStaffRepository,
	importService *services.StaffImportService,
) *EventHandler {
	return &EventHandler{
		events:        events,
		eventsCompany: eventsCompany,
		eventsStaff:   eventsStaff,
		importService: importService,
	}
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if input.Status != "" {
		if _, err := models.ParseStatus(string(input.Status)); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_status",
				Message: "Status must be open, close or pending",
			})
			return
		}
	}
	if !input.DateEnd.After(input.DateBegin) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Event end must be after its begin",
		})
		return
	}

	event, err := h.events.Create(&input, userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create event",
		})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// List handles GET /api/v1/events. Company users only see events owned by
// their company; admin and control see everything.
func (h *EventHandler) List(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var (
		events []*models.Event
		err    error
	)
	if permissions.CanReadAllEvents(userCtx.Role) {
		events, err = h.events.List()
	} else {
		if userCtx.CompanyID == nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Your account is not bound to a company",
			})
			return
		}
		events, err = h.events.ListByCompany(*userCtx.CompanyID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// Get handles GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	event, err := h.events.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch event",
		})
		return
	}

	if !permissions.CanReadEvent(userCtx.User(), event.CompanyID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Event belongs to another company",
		})
		return
	}

	c.JSON(http.StatusOK, event)
}

// Overview handles GET /api/v1/events/:id/overview
func (h *EventHandler) Overview(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	event, err := h.events.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch event",
		})
		return
	}
	if !permissions.CanReadEvent(userCtx.User(), event.CompanyID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Event belongs to another company",
		})
		return
	}

	overview, err := h.events.Overview(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch event overview",
		})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Update handles PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if input.Status != "" {
		if _, err := models.ParseStatus(string(input.Status)); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_status",
				Message: "Status must be open, close or pending",
			})
			return
		}
	}
	if !input.DateEnd.After(input.DateBegin) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Event end must be after its begin",
		})
		return
	}

	if err := h.events.Update(id, &input); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

// Delete handles DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	if err := h.events.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// Roster handles GET /api/v1/events/:id/staff. It is the control-gate view:
// staff identity plus derived credential state per binding.
func (h *EventHandler) Roster(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	event, err := h.events.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch event",
		})
		return
	}
	if !permissions.CanReadEvent(userCtx.User(), event.CompanyID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Event belongs to another company",
		})
		return
	}

	roster, err := h.eventsStaff.ListControlByEvent(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list event roster",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": roster, "count": len(roster)})
}

// ImportStaffRequest is the payload of a bulk staff import.
type ImportStaffRequest struct {
	Staffs []services.StaffImportEntry `json:"staffs" binding:"required,min=1,dive"`
}

// ImportStaff handles POST /api/v1/events/:id/staff/bulk. Only a company
// user whose company owns the event may import; there is no admin bypass.
func (h *EventHandler) ImportStaff(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	var req ImportStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	created, err := h.importService.Import(id, userCtx.User(), req.Staffs)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
		case errors.Is(err, services.ErrEventNotOwned):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Event belongs to another company",
			})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "import_failed",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Staff import completed",
		"received": len(req.Staffs),
		"created":  created,
	})
}

// AddCompany handles POST /api/v1/events/:id/companies
func (h *EventHandler) AddCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	var input models.EventsCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}
	if _, err := models.ParseCompanyRole(string(input.Role)); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_role",
			Message: "Company role must be production or service",
		})
		return
	}

	if _, err := h.events.GetByID(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch event",
		})
		return
	}

	ec, err := h.eventsCompany.Add(id, &input)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "Company is already part of this event",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to add company to event",
		})
		return
	}

	c.JSON(http.StatusCreated, ec)
}

// ListCompanies handles GET /api/v1/events/:id/companies
func (h *EventHandler) ListCompanies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}

	participants, err := h.eventsCompany.ListByEvent(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list event companies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": participants, "count": len(participants)})
}

// RemoveCompany handles DELETE /api/v1/events/:id/companies/:company_id
func (h *EventHandler) RemoveCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Event ID must be a positive integer",
		})
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Company ID must be a positive integer",
		})
		return
	}

	if err := h.eventsCompany.Remove(id, companyID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Company is not part of this event",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to remove company from event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company removed from event"})
}
