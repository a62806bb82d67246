package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puantaj-backend/internal/models"
)

type RuleHandler struct {
	DB *gorm.DB
}

func NewRuleHandler(db *gorm.DB) *RuleHandler {
	return &RuleHandler{DB: db}
}

type weeklyRuleRequest struct {
	DepartmentID   uuid.UUID `json:"departmentId" binding:"required"`
	Weekday        *int      `json:"weekday" binding:"required"`
	PlannedMinutes int       `json:"plannedMinutes" binding:"required,min=1"`
	BreakMinutes   int       `json:"breakMinutes" binding:"min=0"`
}

// UpsertWeekly replaces the rule for the (department, weekday) pair so a
// repeat save never produces duplicate rows.
func (h *RuleHandler) UpsertWeekly(c *gin.Context) {
	var req weeklyRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Weekday < 0 || *req.Weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0-6"})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department not found"})
		return
	}

	rule := models.WeeklyRule{
		DepartmentID:   req.DepartmentID,
		Weekday:        *req.Weekday,
		PlannedMinutes: req.PlannedMinutes,
		BreakMinutes:   req.BreakMinutes,
	}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "department_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned_minutes", "break_minutes", "updated_at"}),
	}).Create(&rule).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save weekly rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) ListWeekly(c *gin.Context) {
	query := h.DB.Order("weekday asc")
	if departmentID := c.Query("departmentId"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var rules []models.WeeklyRule
	if err := query.Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list weekly rules"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *RuleHandler) DeleteWeekly(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DB.Delete(&models.WeeklyRule{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete weekly rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weekly rule deleted"})
}

type workRuleRequest struct {
	DepartmentID   *uuid.UUID `json:"departmentId"`
	PlannedMinutes int        `json:"plannedMinutes" binding:"required,min=1"`
	BreakMinutes   int        `json:"breakMinutes" binding:"min=0"`
}

// UpsertWork saves a department default, or the organization-wide default
// when no department is given.
func (h *RuleHandler) UpsertWork(c *gin.Context) {
	var req workRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.DepartmentID != nil {
		var department models.Department
		if err := h.DB.First(&department, "id = ?", *req.DepartmentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "department not found"})
			return
		}
	}

	query := h.DB.Model(&models.WorkRule{})
	if req.DepartmentID != nil {
		query = query.Where("department_id = ?", *req.DepartmentID)
	} else {
		query = query.Where("department_id IS NULL")
	}

	var existing models.WorkRule
	err := query.First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		rule := models.WorkRule{
			DepartmentID:   req.DepartmentID,
			PlannedMinutes: req.PlannedMinutes,
			BreakMinutes:   req.BreakMinutes,
		}
		if err := h.DB.Create(&rule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save work rule"})
			return
		}
		c.JSON(http.StatusCreated, rule)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save work rule"})
		return
	}

	existing.PlannedMinutes = req.PlannedMinutes
	existing.BreakMinutes = req.BreakMinutes
	if err := h.DB.Save(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save work rule"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *RuleHandler) ListWork(c *gin.Context) {
	var rules []models.WorkRule
	if err := h.DB.Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list work rules"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *RuleHandler) DeleteWork(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DB.Delete(&models.WorkRule{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete work rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "work rule deleted"})
}
