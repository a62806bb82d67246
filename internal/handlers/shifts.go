package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
)

type ShiftHandler struct {
	DB *gorm.DB
}

func NewShiftHandler(db *gorm.DB) *ShiftHandler {
	return &ShiftHandler{DB: db}
}

type shiftRequest struct {
	DepartmentID uuid.UUID `json:"departmentId" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	StartLocal   string    `json:"startLocal" binding:"required"`
	EndLocal     string    `json:"endLocal" binding:"required"`
	BreakMinutes int       `json:"breakMinutes" binding:"min=0"`
}

func validClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

func (h *ShiftHandler) Create(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validClock(req.StartLocal) || !validClock(req.EndLocal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift times must be HH:MM"})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department not found"})
		return
	}

	shift := models.Shift{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		StartLocal:   req.StartLocal,
		EndLocal:     req.EndLocal,
		BreakMinutes: req.BreakMinutes,
	}
	if err := h.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create shift"})
		return
	}
	c.JSON(http.StatusCreated, shift)
}

func (h *ShiftHandler) List(c *gin.Context) {
	query := h.DB.Order("name asc")
	if departmentID := c.Query("departmentId"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var shifts []models.Shift
	if err := query.Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shifts"})
		return
	}
	c.JSON(http.StatusOK, shifts)
}

func (h *ShiftHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validClock(req.StartLocal) || !validClock(req.EndLocal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift times must be HH:MM"})
		return
	}

	var shift models.Shift
	if err := h.DB.First(&shift, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return
	}

	shift.DepartmentID = req.DepartmentID
	shift.Name = req.Name
	shift.StartLocal = req.StartLocal
	shift.EndLocal = req.EndLocal
	shift.BreakMinutes = req.BreakMinutes
	if err := h.DB.Save(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update shift"})
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var count int64
	h.DB.Model(&models.ShiftAssignment{}).Where("shift_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "shift has assignments"})
		return
	}

	if err := h.DB.Delete(&models.Shift{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shift deleted"})
}

type assignmentRequest struct {
	EmployeeID    uuid.UUID `json:"employeeId" binding:"required"`
	ShiftID       uuid.UUID `json:"shiftId" binding:"required"`
	Weekday       *int      `json:"weekday" binding:"required"`
	EffectiveFrom time.Time `json:"effectiveFrom" binding:"required"`
}

func (h *ShiftHandler) Assign(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Weekday < 0 || *req.Weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0-6"})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee not found"})
		return
	}
	var shift models.Shift
	if err := h.DB.First(&shift, "id = ?", req.ShiftID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift not found"})
		return
	}
	if shift.DepartmentID != employee.DepartmentID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift belongs to another department"})
		return
	}

	assignment := models.ShiftAssignment{
		EmployeeID:    req.EmployeeID,
		ShiftID:       req.ShiftID,
		Weekday:       *req.Weekday,
		EffectiveFrom: req.EffectiveFrom,
	}
	if err := h.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assignment"})
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *ShiftHandler) ListAssignments(c *gin.Context) {
	query := h.DB.Preload("Shift").Order("weekday asc, effective_from desc")
	if employeeID := c.Query("employeeId"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	var assignments []models.ShiftAssignment
	if err := query.Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *ShiftHandler) DeleteAssignment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DB.Delete(&models.ShiftAssignment{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete assignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}
