package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination limits enforced at the boundary; repositories receive
// already-validated values.
const (
	defaultLimit = 10
	maxLimit     = 200
)

type pagination struct {
	Offset int
	Limit  int
}

// parsePagination reads offset/limit query params, clamping offset to
// >= 0 and limit to [0, 200].
func parsePagination(c *gin.Context) pagination {
	p := pagination{Offset: 0, Limit: defaultLimit}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v > 0 {
		p.Offset = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil && v >= 0 {
		p.Limit = v
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}
