package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// parsePagination reads limit/offset query params. Invalid numeric input
// falls back to the defaults rather than erroring; limit is clamped to
// [1, maxLimit].
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultLimit
	offset = 0

	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		offset = v
	}

	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// paginate slices a dataset into the standard response envelope
func paginate[T any](items []T, limit, offset int) gin.H {
	total := len(items)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return gin.H{
		"data":    page,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"hasMore": offset+len(page) < total,
	}
}
