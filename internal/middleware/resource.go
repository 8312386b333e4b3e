package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// RequireIDParam parses the :id path parameter. An id that is not a positive
// integer cannot name a resource, so it is answered with 404.
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.NotFound(c, "")
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetResourceID returns the id stored by RequireIDParam.
func GetResourceID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
