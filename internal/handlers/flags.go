package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"puantaj-backend/internal/timesheet"
)

// ListFlags serves the flag vocabulary so clients render codes from one
// authoritative table instead of hard-coding copies.
func ListFlags(c *gin.Context) {
	c.JSON(http.StatusOK, timesheet.Registry)
}
