package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/permissions"
	"github.com/eventops/staffing-backend/pkg/validator"
)

// StaffHandler handles staff management endpoints
type StaffHandler struct {
	staffs    *database.StaffRepository
	documents *validator.DocumentValidator
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffs *database.StaffRepository, documents *validator.DocumentValidator) *StaffHandler {
	return &StaffHandler{staffs: staffs, documents: documents}
}

// CreateStaffRequest is the payload for creating a staff member. Company
// users always create under their own company; admins must name one.
type CreateStaffRequest struct {
	Name    string `json:"name" binding:"required"`
	CPF     string `json:"cpf" binding:"required"`
	Company *int64 `json:"company"`
}

// resolveCompany decides which company a staff operation targets.
func resolveCompany(userCtx middleware.UserContext, requested *int64) (int64, bool) {
	if userCtx.Role == models.RoleAdmin {
		if requested == nil {
			return 0, false
		}
		return *requested, true
	}
	if userCtx.CompanyID == nil {
		return 0, false
	}
	return *userCtx.CompanyID, true
}

// Create handles POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanManageStaff(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to manage staff",
		})
		return
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	companyID, ok := resolveCompany(userCtx, req.Company)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "A company must be specified for this staff member",
		})
		return
	}

	cpf, err := h.documents.ValidateCPF(req.CPF)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_cpf",
			Message: err.Error(),
		})
		return
	}

	staff, err := h.staffs.Create(req.Name, cpf, companyID, userCtx.UserID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "A staff member with this CPF already exists in the company",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create staff",
		})
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// List handles GET /api/v1/staff. Admins see everything, company users only
// their own roster.
func (h *StaffHandler) List(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanManageStaff(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to read staff",
		})
		return
	}

	var (
		staffs []*models.Staff
		err    error
	)
	if userCtx.Role == models.RoleAdmin {
		staffs, err = h.staffs.List()
	} else {
		if userCtx.CompanyID == nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Your account is not bound to a company",
			})
			return
		}
		staffs, err = h.staffs.ListByCompany(*userCtx.CompanyID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list staff",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": staffs, "count": len(staffs)})
}

// Get handles GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanManageStaff(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to read staff",
		})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Staff ID must be a positive integer",
		})
		return
	}

	staff, err := h.staffs.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Staff not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch staff",
		})
		return
	}

	if userCtx.Role != models.RoleAdmin && !permissions.OwnsCompanyResource(userCtx.User(), staff.CompanyID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Staff belongs to another company",
		})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// Update handles PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanManageStaff(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to manage staff",
		})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Staff ID must be a positive integer",
		})
		return
	}

	var input models.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	cpf, err := h.documents.ValidateCPF(input.CPF)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_cpf",
			Message: err.Error(),
		})
		return
	}

	if userCtx.Role != models.RoleAdmin {
		staff, err := h.staffs.GetByID(id)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Staff not found",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to fetch staff",
			})
			return
		}
		if !permissions.OwnsCompanyResource(userCtx.User(), staff.CompanyID) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Staff belongs to another company",
			})
			return
		}
	}

	if err := h.staffs.Update(id, input.Name, cpf); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Staff not found",
			})
		case errors.Is(err, database.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "A staff member with this CPF already exists in the company",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to update staff",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff updated"})
}

// Delete handles DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok || !permissions.CanManageStaff(userCtx.Role) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to manage staff",
		})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Staff ID must be a positive integer",
		})
		return
	}

	if userCtx.Role != models.RoleAdmin {
		staff, err := h.staffs.GetByID(id)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Staff not found",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to fetch staff",
			})
			return
		}
		if !permissions.OwnsCompanyResource(userCtx.User(), staff.CompanyID) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Staff belongs to another company",
			})
			return
		}
	}

	if err := h.staffs.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Staff not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete staff",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}
