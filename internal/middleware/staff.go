package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// RequireStaff lets only staff users through. It must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if !actor.IsStaff {
			apierrors.Forbidden(c, "")
			return
		}

		c.Next()
	}
}
