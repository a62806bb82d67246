package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/riskscore"
)

type RiskHandler struct {
	DB     *gorm.DB
	Scorer *riskscore.Service
}

func NewRiskHandler(db *gorm.DB, scorer *riskscore.Service) *RiskHandler {
	return &RiskHandler{DB: db, Scorer: scorer}
}

// Score returns the trailing-window risk score of one employee.
func (h *RiskHandler) Score(c *gin.Context) {
	id, ok := parseUUIDParam(c, "employeeId")
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	result, err := h.Scorer.Score(employee, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to score employee"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScoreAll is the dashboard view: every employee's current score. Employees
// whose window cannot be scored are reported alongside the results.
func (h *RiskHandler) ScoreAll(c *gin.Context) {
	var employees []models.Employee
	if err := h.DB.Order("last_name asc, first_name asc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}

	now := time.Now()
	results := make([]riskscore.Result, 0, len(employees))
	failures := map[string]string{}
	for _, employee := range employees {
		result, err := h.Scorer.Score(employee, now)
		if err != nil {
			failures[employee.ID.String()] = err.Error()
			continue
		}
		results = append(results, result)
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "failures": failures})
}

func (h *RiskHandler) Weights(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scorer.Weights())
}

// SaveWeights replaces the operator weight table.
func (h *RiskHandler) SaveWeights(c *gin.Context) {
	var cfg riskscore.WeightConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(cfg.Factors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one factor required"})
		return
	}
	for _, factor := range cfg.Factors {
		if factor.Code == "" || factor.Weight < 0 || factor.Max < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid factor entry"})
			return
		}
	}
	if cfg.Bands.Watch <= 0 || cfg.Bands.Critical <= cfg.Bands.Watch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bands must satisfy 0 < watch < critical"})
		return
	}

	if err := h.Scorer.SaveWeights(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save weights"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
