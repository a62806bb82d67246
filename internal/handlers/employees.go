package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
)

type EmployeeHandler struct {
	DB *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{DB: db}
}

type employeeRequest struct {
	FirstName    string    `json:"firstName" binding:"required"`
	LastName     string    `json:"lastName" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	DepartmentID uuid.UUID `json:"departmentId" binding:"required"`
	Position     string    `json:"position"`
	Phone        string    `json:"phone"`
	HiredAt      time.Time `json:"hiredAt" binding:"required"`
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department not found"})
		return
	}

	employee := models.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Phone:        req.Phone,
		HiredAt:      req.HiredAt,
	}
	if err := h.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "employee email already exists"})
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	query := h.DB.Order("last_name asc, first_name asc")
	if departmentID := c.Query("departmentId"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Email = req.Email
	employee.DepartmentID = req.DepartmentID
	employee.Position = req.Position
	employee.Phone = req.Phone
	employee.HiredAt = req.HiredAt

	if err := h.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DB.Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
