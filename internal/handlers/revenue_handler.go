package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/services/revenue"
)

// timeframes the revenue view offers
var allowedTimeframes = map[int]bool{3: true, 6: true, 12: true, 24: true}

// RevenueHandler serves the partner's revenue rollups
type RevenueHandler struct {
	db *gorm.DB
}

// NewRevenueHandler creates a new revenue handler
func NewRevenueHandler(db *gorm.DB) *RevenueHandler {
	return &RevenueHandler{db: db}
}

// Summary returns the partner's totals and trailing monthly buckets.
// ?months selects the window (3/6/12/24, default 12).
func (h *RevenueHandler) Summary(c *gin.Context) {
	userID, _ := currentUserID(c)

	months := 12
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || !allowedTimeframes[parsed] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be one of 3, 6, 12, 24"})
			return
		}
		months = parsed
	}

	var deals []models.Deal
	if err := h.db.Where("user_id = ?", userID).Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	var leads []models.Lead
	if err := h.db.Where("user_id = ?", userID).Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	summary := revenue.Summarize(deals, months, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"summary":         summary,
		"conversion_rate": revenue.ConversionRate(leads),
	})
}
