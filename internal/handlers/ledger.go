package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/ledger"
	"puantaj-backend/internal/models"
	"puantaj-backend/internal/resolve"
)

type LedgerHandler struct {
	DB       *gorm.DB
	Ledger   *ledger.Service
	Resolver *resolve.Service
}

func NewLedgerHandler(db *gorm.DB, led *ledger.Service, resolver *resolve.Service) *LedgerHandler {
	return &LedgerHandler{DB: db, Ledger: led, Resolver: resolver}
}

func (h *LedgerHandler) yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return year, true
}

// Snapshot returns the annual overtime position of one employee. A partially
// cached year reports capState "unknown"; recompute fills it in.
func (h *LedgerHandler) Snapshot(c *gin.Context) {
	id, ok := parseUUIDParam(c, "employeeId")
	if !ok {
		return
	}
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	snap, err := h.Ledger.Snapshot(employee.ID, year, employee.HiredAt, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read ledger"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Recompute rebuilds the employee's year from the resolved days.
func (h *LedgerHandler) Recompute(c *gin.Context) {
	id, ok := parseUUIDParam(c, "employeeId")
	if !ok {
		return
	}
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	if err := h.Resolver.RecomputeYear(employee, year); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.Ledger.Snapshot(employee.ID, year, employee.HiredAt, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read ledger"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
