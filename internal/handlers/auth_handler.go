package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLoginRequest carries the Google ID token obtained by the frontend.
type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterRequest carries an invite token plus the Google ID token of the
// person accepting it.
type RegisterRequest struct {
	Invite string `json:"invite" binding:"required"`
	Token  string `json:"token" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// GoogleLogin handles POST /api/v1/auth/google/login
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.authService.GoogleLogin(c.Request.Context(), req.Token, services.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register handles POST /api/v1/auth/google/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.authService.RegisterWithInvite(c.Request.Context(), req.Invite, req.Token, req.Name)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	access, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	var stateErr *services.InviteStateError
	switch {
	case errors.Is(err, services.ErrInvalidGoogleToken):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_token",
			Message: "Identity could not be verified",
		})
	case errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_refresh_token",
			Message: "Refresh token is invalid or expired",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "No active account for this identity",
		})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Invite not found",
		})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invite_" + stateErr.Status,
			Message: stateErr.Error(),
		})
	case errors.Is(err, services.ErrEmailMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "email_mismatch",
			Message: "This invite is restricted to a different email address",
		})
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "conflict",
			Message: "An account with this email already exists",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Something went wrong",
		})
	}
}
