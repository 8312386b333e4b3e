package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// UserHandler serves staff-only user administration.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// DeleteUser removes a user with everything they created or wrote.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	if err := h.authService.DeleteUser(userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
