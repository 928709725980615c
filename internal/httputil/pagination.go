package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Listing endpoints (maid search, job postings, agency directory) page with
// offset/limit query parameters. A missing limit yields DefaultLimit rows;
// MaxLimit caps how much a single page can pull from the database.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination reads the offset and limit query parameters from the
// request. Offset defaults to 0 and limit to DefaultLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return offset, limit, nil
}
