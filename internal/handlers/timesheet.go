package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/resolve"
	"puantaj-backend/internal/timesheet"
)

type TimesheetHandler struct {
	DB       *gorm.DB
	Resolver *resolve.Service
}

func NewTimesheetHandler(db *gorm.DB, resolver *resolve.Service) *TimesheetHandler {
	return &TimesheetHandler{DB: db, Resolver: resolver}
}

func (h *TimesheetHandler) loadEmployee(c *gin.Context) (models.Employee, bool) {
	id, ok := parseUUIDParam(c, "employeeId")
	if !ok {
		return models.Employee{}, false
	}
	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return models.Employee{}, false
	}
	return employee, true
}

// parseLocalDate parses a YYYY-MM-DD value as midnight in the organization
// timezone. Parsing in UTC and converting afterwards would shift the
// calendar day for timezones west of UTC.
func parseLocalDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}

// yearMonthParam parses the "2006-01" month path segment.
func yearMonthParam(c *gin.Context) (int, time.Month, bool) {
	parsed, err := time.Parse("2006-01", c.Param("yyyymm"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}

// Day resolves and returns a single employee day.
func (h *TimesheetHandler) Day(c *gin.Context) {
	employee, ok := h.loadEmployee(c)
	if !ok {
		return
	}

	date, err := parseLocalDate(c.Param("date"), h.Resolver.Cfg.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	day, err := h.Resolver.Day(employee, date)
	if err == timesheet.ErrNoRuleConfigured {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no rule configured for day"})
		return
	}
	if err == timesheet.ErrInvalidOverride {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "override out time before in time"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve day"})
		return
	}
	c.JSON(http.StatusOK, day)
}

// Month resolves a full employee month: days, monthly summary and the annual
// ledger snapshot.
func (h *TimesheetHandler) Month(c *gin.Context) {
	employee, ok := h.loadEmployee(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthParam(c)
	if !ok {
		return
	}

	result, err := h.Resolver.Month(employee, year, month)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type resolveMonthRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ResolveMonth runs month resolution for every employee over the worker
// pool. Failures are reported per employee; one broken configuration does
// not abort the batch.
func (h *TimesheetHandler) ResolveMonth(c *gin.Context) {
	var req resolveMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, errs, err := h.Resolver.MonthAll(req.Year, time.Month(req.Month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve month"})
		return
	}

	failures := map[string]string{}
	for id, e := range errs {
		failures[id.String()] = e.Error()
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "failures": failures})
}
