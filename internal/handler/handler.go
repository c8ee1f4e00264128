package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/apperr"
)

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation("Invalid %s", name)
	}
	return id, nil
}

// bindJSON decodes the request body
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("Invalid request body: %v", err)
	}
	return nil
}
