package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams extracts pagination parameters from the request.
// Lists are unpaginated unless the client asks for a page or a limit.
func GetPaginationParams(c *gin.Context) *PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return nil
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return &PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
