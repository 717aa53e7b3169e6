package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/apperrors"
)

// respondError writes the typed failure with its mapped HTTP status. The
// error kind is included so callers can distinguish "try later" from "never
// valid" without parsing messages.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	kind := apperrors.KindOf(err)
	if kind == "" {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

// parseID parses a numeric path id
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// pagination reads page/limit query params with sane defaults
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
