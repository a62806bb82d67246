package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/timesheet"
)

type EventHandler struct {
	DB *gorm.DB
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{DB: db}
}

type eventRequest struct {
	EmployeeID     uuid.UUID `json:"employeeId" binding:"required"`
	Type           string    `json:"type" binding:"required,oneof=IN OUT"`
	Timestamp      time.Time `json:"timestamp" binding:"required"`
	Source         string    `json:"source" binding:"required,oneof=device qr manual"`
	LocationStatus string    `json:"locationStatus" binding:"omitempty,oneof=verified-home unverified none"`
	Coordinates    string    `json:"coordinates"`
	Note           string    `json:"note"`
}

// Create ingests a raw event. Replays of the same (employee, type, timestamp,
// source) tuple hit the unique index and return the existing row instead of
// a second copy, so device queues can retry safely.
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee not found"})
		return
	}

	locationStatus := req.LocationStatus
	if locationStatus == "" {
		locationStatus = "none"
	}

	event := models.AttendanceEvent{
		EmployeeID:     req.EmployeeID,
		Type:           req.Type,
		Timestamp:      req.Timestamp.UTC(),
		Source:         req.Source,
		LocationStatus: locationStatus,
		Coordinates:    req.Coordinates,
		Note:           req.Note,
	}
	if err := h.DB.Create(&event).Error; err != nil {
		var existing models.AttendanceEvent
		lookupErr := h.DB.Where("employee_id = ? AND type = ? AND timestamp = ? AND source = ?",
			req.EmployeeID, req.Type, req.Timestamp.UTC(), req.Source).First(&existing).Error
		if lookupErr == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) List(c *gin.Context) {
	query := h.DB.Order("timestamp asc")
	if employeeID := c.Query("employeeId"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("timestamp >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("timestamp < ?", to)
	}
	if c.Query("includeDeleted") != "true" {
		query = query.Where("deleted = ?", false)
	}

	var events []models.AttendanceEvent
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// Delete soft-deletes an event. The row stays for auditing and can be
// restored; the resolver simply stops seeing it.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result := h.DB.Model(&models.AttendanceEvent{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *EventHandler) Restore(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result := h.DB.Model(&models.AttendanceEvent{}).
		Where("id = ? AND deleted = ?", id, true).
		Update("deleted", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "deleted event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event restored"})
}

// ApproveSecond marks an IN event as an approved second shift start. Without
// the approval the resolver keeps the day's second interval out of the
// worked total.
func (h *EventHandler) ApproveSecond(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var event models.AttendanceEvent
	if err := h.DB.First(&event, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if event.Type != "IN" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only check-in events can be approved"})
		return
	}

	flag := string(timesheet.FlagSecondCheckinApproved)
	flags := strings.Split(event.Flags, ",")
	for _, f := range flags {
		if strings.TrimSpace(f) == flag {
			c.JSON(http.StatusOK, event)
			return
		}
	}
	if event.Flags == "" {
		event.Flags = flag
	} else {
		event.Flags = event.Flags + "," + flag
	}

	if err := h.DB.Model(&event).Update("flags", event.Flags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve event"})
		return
	}
	c.JSON(http.StatusOK, event)
}
