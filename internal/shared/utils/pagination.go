package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads page and page_size from the query string, applying
// defaults and capping the page size.
func ParsePagination(c *gin.Context) Pagination {
	page := parseQueryInt(c, "page", constants.DefaultPage)
	size := parseQueryInt(c, "page_size", constants.DefaultPageSize)
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: size}
}

func parseQueryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			return n
		}
	}
	return def
}

func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
