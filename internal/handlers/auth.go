package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username"`
		Email    string `json:"email" binding:"omitempty,email,max=254"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ObtainToken exchanges username and password for an access/refresh pair.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	type TokenRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.ObtainToken(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken issues a new access token from a refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.authService.RefreshToken(req.Refresh)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access": access,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}
