package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
)

type DepartmentHandler struct {
	DB *gorm.DB
}

func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

type departmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department := models.Department{Name: req.Name}
	if err := h.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "department already exists"})
		return
	}
	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) List(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("name asc").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list departments"})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "department not found"})
		return
	}

	department.Name = req.Name
	if err := h.DB.Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update department"})
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var count int64
	h.DB.Model(&models.Employee{}).Where("department_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "department has employees"})
		return
	}

	if err := h.DB.Delete(&models.Department{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete department"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "department deleted"})
}
