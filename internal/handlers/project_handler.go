package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
)

// ProjectHandler handles project management endpoints
type ProjectHandler struct {
	projects *database.ProjectRepository
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *database.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var input models.ProjectInput
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

	project, err := h.projects.Create(&input, userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create project",
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// List handles GET /api/v1/projects. Company users only see their own
// projects.
func (h *ProjectHandler) List(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var (
		projects []*models.Project
		err      error
	)
	if userCtx.Role == models.RoleCompany {
		if userCtx.CompanyID == nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Your account is not bound to a company",
			})
			return
		}
		projects, err = h.projects.ListByCompany(*userCtx.CompanyID)
	} else {
		projects, err = h.projects.List()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list projects",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
}

// Get handles GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Project ID must be a positive integer",
		})
		return
	}

	project, err := h.projects.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Project not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch project",
		})
		return
	}

	if userCtx.Role == models.RoleCompany {
		if userCtx.CompanyID == nil || *userCtx.CompanyID != project.CompanyID {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Project belongs to another company",
			})
			return
		}
	}

	c.JSON(http.StatusOK, project)
}

// Update handles PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Project ID must be a positive integer",
		})
		return
	}

	var input models.ProjectInput
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

	if err := h.projects.Update(id, &input); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Project not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update project",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated"})
}

// Delete handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Project ID must be a positive integer",
		})
		return
	}

	if err := h.projects.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Project not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete project",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
