package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/resolve"
	"puantaj-backend/internal/timesheet"
)

type OverrideHandler struct {
	DB       *gorm.DB
	Resolver *resolve.Service
}

func NewOverrideHandler(db *gorm.DB, resolver *resolve.Service) *OverrideHandler {
	return &OverrideHandler{DB: db, Resolver: resolver}
}

type overrideRequest struct {
	EmployeeID        uuid.UUID  `json:"employeeId" binding:"required"`
	DayDate           string     `json:"dayDate" binding:"required"`
	InAt              *time.Time `json:"inAt"`
	OutAt             *time.Time `json:"outAt"`
	Status            string     `json:"status" binding:"omitempty,oneof=NORMAL LEAVE HOLIDAY ABSENT"`
	Reason            string     `json:"reason"`
	IsAbsent          bool       `json:"isAbsent"`
	RuleSourceRequest string     `json:"ruleSourceRequest" binding:"omitempty,oneof=AUTO SHIFT WEEKLY WORK_RULE"`
	RuleShiftID       *uuid.UUID `json:"ruleShiftId"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

// Upsert creates or replaces the override for one employee day. Older
// clients still send the status inside the note text; the legacy decoder
// normalizes those writes into the explicit status column. A stale
// ExpectedUpdatedAt loses with 409 so two HR edits cannot silently clobber
// each other.
func (h *OverrideHandler) Upsert(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := parseLocalDate(req.DayDate, h.Resolver.Cfg.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dayDate must be YYYY-MM-DD"})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee not found"})
		return
	}

	status := timesheet.OverrideStatus(req.Status)
	reason := req.Reason
	if req.Status == "" {
		status, reason = timesheet.DecodeLegacyNote(req.Reason, req.IsAbsent)
	}

	if req.InAt != nil && req.OutAt != nil && !req.OutAt.After(*req.InAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "override out time must be after in time"})
		return
	}

	ruleRequest := req.RuleSourceRequest
	if ruleRequest == "" {
		ruleRequest = string(timesheet.RequestAuto)
	}
	if ruleRequest == string(timesheet.RequestShift) && req.RuleShiftID != nil {
		var shift models.Shift
		if err := h.DB.First(&shift, "id = ?", *req.RuleShiftID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "override shift not found"})
			return
		}
		if shift.DepartmentID != employee.DepartmentID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "override shift belongs to another department"})
			return
		}
	}

	updatedBy, _ := uuid.Parse(c.GetString("userID"))

	var existing models.DayOverride
	err = h.DB.Where("employee_id = ? AND day_date = ?", req.EmployeeID, req.DayDate).
		First(&existing).Error

	switch {
	case err == gorm.ErrRecordNotFound:
		override := models.DayOverride{
			EmployeeID:        req.EmployeeID,
			DayDate:           req.DayDate,
			InAt:              req.InAt,
			OutAt:             req.OutAt,
			Status:            string(status),
			Reason:            reason,
			RuleSourceRequest: ruleRequest,
			RuleShiftID:       req.RuleShiftID,
			UpdatedBy:         updatedBy,
		}
		current, outcome := createOutcome(h.DB.Create(&override).Error, func() (models.DayOverride, bool) {
			var row models.DayOverride
			lookupErr := h.DB.Where("employee_id = ? AND day_date = ?", req.EmployeeID, req.DayDate).
				First(&row).Error
			return row, lookupErr == nil
		})
		switch outcome {
		case http.StatusCreated:
			h.refreshLedger(employee, day.Year())
			c.JSON(http.StatusCreated, override)
		case http.StatusConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "override was modified by someone else", "current": current})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save override"})
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save override"})
	default:
		if req.ExpectedUpdatedAt != nil && !req.ExpectedUpdatedAt.Equal(existing.UpdatedAt) {
			c.JSON(http.StatusConflict, gin.H{"error": "override was modified by someone else", "current": existing})
			return
		}
		existing.InAt = req.InAt
		existing.OutAt = req.OutAt
		existing.Status = string(status)
		existing.Reason = reason
		existing.RuleSourceRequest = ruleRequest
		existing.RuleShiftID = req.RuleShiftID
		existing.UpdatedBy = updatedBy
		if err := h.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save override"})
			return
		}
		h.refreshLedger(employee, day.Year())
		c.JSON(http.StatusOK, existing)
	}
}

func (h *OverrideHandler) List(c *gin.Context) {
	query := h.DB.Order("day_date asc")
	if employeeID := c.Query("employeeId"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("day_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("day_date <= ?", to)
	}

	var overrides []models.DayOverride
	if err := query.Find(&overrides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list overrides"})
		return
	}
	c.JSON(http.StatusOK, overrides)
}

// Delete removes an override; the day reverts to its computed record.
func (h *OverrideHandler) Delete(c *gin.Context) {
	employeeID, ok := parseUUIDParam(c, "employeeId")
	if !ok {
		return
	}
	dayDate := c.Param("date")
	if _, err := parseLocalDate(dayDate, h.Resolver.Cfg.Location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var override models.DayOverride
	if err := h.DB.Where("employee_id = ? AND day_date = ?", employeeID, dayDate).
		First(&override).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "override not found"})
		return
	}
	if err := h.DB.Delete(&override).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete override"})
		return
	}

	if day, err := parseLocalDate(override.DayDate, h.Resolver.Cfg.Location); err == nil {
		var employee models.Employee
		if err := h.DB.First(&employee, "id = ?", override.EmployeeID).Error; err == nil {
			h.refreshLedger(employee, day.Year())
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "override deleted"})
}

// createOutcome classifies a first-time insert. Two concurrent first writes
// for the same day both miss the existing-row lookup; the loser fails the
// unique index. When the row turns out to exist after a failed insert, the
// losing writer is a conflict, not a server error.
func createOutcome(createErr error, existing func() (models.DayOverride, bool)) (models.DayOverride, int) {
	if createErr == nil {
		return models.DayOverride{}, http.StatusCreated
	}
	if current, ok := existing(); ok {
		return current, http.StatusConflict
	}
	return models.DayOverride{}, http.StatusInternalServerError
}

// refreshLedger rebuilds the year after a retroactive edit. When the rebuild
// cannot complete (a month without rule coverage, say) the cached months are
// dropped instead, so the cap state degrades to unknown rather than serving
// a stale total.
func (h *OverrideHandler) refreshLedger(employee models.Employee, year int) {
	if err := h.Resolver.RecomputeYear(employee, year); err != nil {
		log.Printf("ledger recompute failed for employee %s year %d: %v", employee.ID, year, err)
		if err := h.Resolver.Ledger.Invalidate(employee.ID, year); err != nil {
			log.Printf("ledger invalidate failed for employee %s year %d: %v", employee.ID, year, err)
		}
	}
}
