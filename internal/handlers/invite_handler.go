package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/config"
	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
)

// InviteHandler handles user invite endpoints
type InviteHandler struct {
	invites *database.InviteRepository
	config  *config.Config
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites *database.InviteRepository, cfg *config.Config) *InviteHandler {
	return &InviteHandler{invites: invites, config: cfg}
}

// InviteResponse is an invite plus its derived state and signup link.
type InviteResponse struct {
	*models.UserInvite
	Status    string `json:"status"`
	InviteURL string `json:"invite_url,omitempty"`
}

func (h *InviteHandler) response(invite *models.UserInvite, withURL bool) InviteResponse {
	resp := InviteResponse{UserInvite: invite, Status: invite.Status()}
	if withURL {
		resp.InviteURL = h.config.Server.FrontendURL + "/signup?invite=" + invite.ID
	}
	return resp
}

// Create handles POST /api/v1/invites
func (h *InviteHandler) Create(c *gin.Context) {
	userCtx, _ := middleware.GetUserContext(c)

	var input models.InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if !input.Role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_role",
			Message: "Role must be admin, company or control",
		})
		return
	}

	invite, err := h.invites.Create(input.CompanyID, input.Email, input.Role, h.config.Invite.TTL, userCtx.UserID)
	if err != nil {
		if errors.Is(err, database.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "unknown_company",
				Message: "Company does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create invite",
		})
		return
	}

	c.JSON(http.StatusCreated, h.response(invite, true))
}

// List handles GET /api/v1/invites
func (h *InviteHandler) List(c *gin.Context) {
	invites, err := h.invites.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list invites",
		})
		return
	}

	responses := make([]InviteResponse, 0, len(invites))
	for _, invite := range invites {
		responses = append(responses, h.response(invite, true))
	}
	c.JSON(http.StatusOK, gin.H{"invites": responses, "count": len(responses)})
}

// Get handles GET /api/v1/auth/invites/:id. It is public: the signup page
// uses it to decide whether to render the registration form. Only derived
// state is exposed, never who issued the invite.
func (h *InviteHandler) Get(c *gin.Context) {
	invite, err := h.invites.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Invite not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch invite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         invite.ID,
		"status":     invite.Status(),
		"role":       invite.Role,
		"company":    invite.CompanyID,
		"email":      invite.Email,
		"expires_at": invite.ExpiresAt,
	})
}

// Delete handles DELETE /api/v1/invites/:id
func (h *InviteHandler) Delete(c *gin.Context) {
	if err := h.invites.Delete(c.Param("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Invite not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete invite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite revoked"})
}
