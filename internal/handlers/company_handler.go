package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/pkg/validator"
)

// CompanyHandler handles company management endpoints
type CompanyHandler struct {
	companies *database.CompanyRepository
	documents *validator.DocumentValidator
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companies *database.CompanyRepository, documents *validator.DocumentValidator) *CompanyHandler {
	return &CompanyHandler{companies: companies, documents: documents}
}

// Create handles POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var input models.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	cnpj, err := h.documents.ValidateCNPJ(input.CNPJ)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_cnpj",
			Message: err.Error(),
		})
		return
	}

	company, err := h.companies.Create(input.Name, cnpj, userCtx.UserID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "A company with this CNPJ already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create company",
		})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// List handles GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list companies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies, "count": len(companies)})
}

// Get handles GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Company ID must be a positive integer",
		})
		return
	}

	company, err := h.companies.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Company not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch company",
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// Update handles PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Company ID must be a positive integer",
		})
		return
	}

	var input models.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	cnpj, err := h.documents.ValidateCNPJ(input.CNPJ)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_cnpj",
			Message: err.Error(),
		})
		return
	}

	if err := h.companies.Update(id, input.Name, cnpj); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Company not found",
			})
		case errors.Is(err, database.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "A company with this CNPJ already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to update company",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company updated"})
}

// Delete handles DELETE /api/v1/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Company ID must be a positive integer",
		})
		return
	}

	if err := h.companies.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Company not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete company",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
