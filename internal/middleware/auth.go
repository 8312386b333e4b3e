package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/permissions"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// TokenVerifier resolves an access token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// RequireAuth checks the bearer token in the Authorization header and loads
// the user it belongs to.
func RequireAuth(verifier TokenVerifier, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Given token not valid for any token type")
			return
		}

		// A token may outlive its user.
		user, err := userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "User not found")
				return
			}
			log.Printf("Failed to load authenticated user %d: %v", userID, err)
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}

// GetCurrentUser retrieves the user loaded by RequireAuth.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// GetActor returns the acting identity for permission checks.
func GetActor(c *gin.Context) (permissions.Actor, bool) {
	user, ok := GetCurrentUser(c)
	if !ok {
		return permissions.Actor{}, false
	}
	return permissions.ActorFromUser(user), true
}
