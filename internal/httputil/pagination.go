package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination parses the page and page_size query parameters.
// Missing parameters default to page 1 and page size 10. Out-of-range values
// are not rejected here; the lifecycle layer clamps them.
func ParsePagination(c *gin.Context) (page, pageSize int, err error) {
	pageStr := c.DefaultQuery("page", "1")
	page, err = strconv.Atoi(pageStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page parameter: must be an integer")
	}

	pageSizeStr := c.DefaultQuery("page_size", "10")
	pageSize, err = strconv.Atoi(pageSizeStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page_size parameter: must be an integer")
	}

	return page, pageSize, nil
}
