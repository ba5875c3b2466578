package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	adminsvc "github.com/merchantfeeadvocate/backend/internal/services/admin"
	"github.com/merchantfeeadvocate/backend/internal/services/revenue"
)

// AdminHandler serves the operator's global views
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// UpdatePartnerRequest represents the request body for partner management
type UpdatePartnerRequest struct {
	Status         *models.UserStatus `json:"status"`
	CommissionRate *float64           `json:"commission_rate"`
}

// UpdateApplicationStatusRequest represents the review decision body
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// Overview returns the global rollup across all partners
func (h *AdminHandler) Overview(c *gin.Context) {
	var partners []models.User
	if err := h.db.Where("role = ?", models.RolePartner).Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partners"})
		return
	}

	var purchases []models.Purchase
	if err := h.db.Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	var leads []models.Lead
	if err := h.db.Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	var deals []models.Deal
	if err := h.db.Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	var applications []models.ReferralApplication
	if err := h.db.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	overview := adminsvc.BuildOverview(partners, purchases, leads, deals, applications, time.Now())
	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

// ListPartners returns every partner account
func (h *AdminHandler) ListPartners(c *gin.Context) {
	var partners []models.User
	query := h.db.Where("role = ?", models.RolePartner).Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

// GetPartner returns the tabbed detail view: account, profile, book of
// business and purchase history for one partner.
func (h *AdminHandler) GetPartner(c *gin.Context) {
	var partner models.User
	if err := h.db.Where("id = ? AND role = ?", c.Param("id"), models.RolePartner).First(&partner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	var profile models.PartnerProfile
	h.db.Where("user_id = ?", partner.ID).First(&profile)

	var leads []models.Lead
	if err := h.db.Where("user_id = ?", partner.ID).Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	var deals []models.Deal
	if err := h.db.Where("user_id = ?", partner.ID).Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	var purchases []models.Purchase
	if err := h.db.Where("user_id = ?", partner.ID).Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	var signatures []models.DocumentSignature
	h.db.Where("user_id = ?", partner.ID).Find(&signatures)

	c.JSON(http.StatusOK, gin.H{
		"partner":    partner,
		"profile":    profile,
		"leads":      leads,
		"deals":      deals,
		"purchases":  purchases,
		"signatures": signatures,
		"revenue":    revenue.Summarize(deals, 12, time.Now()),
	})
}

// UpdatePartner changes a partner's status or commission rate
func (h *AdminHandler) UpdatePartner(c *gin.Context) {
	var partner models.User
	if err := h.db.Where("id = ? AND role = ?", c.Param("id"), models.RolePartner).First(&partner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	var req UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.UserStatusPending, models.UserStatusActive, models.UserStatusSuspended:
			partner.Status = *req.Status
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown partner status"})
			return
		}
	}
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Commission rate must be between 0 and 100"})
			return
		}
		partner.CommissionRate = *req.CommissionRate
	}

	if err := h.db.Save(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update partner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// ListApplications returns every referral application for review
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var apps []models.ReferralApplication
	query := h.db.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// UpdateApplicationStatus records a review decision
func (h *AdminHandler) UpdateApplicationStatus(c *gin.Context) {
	var app models.ReferralApplication
	if err := h.db.First(&app, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.ApplicationStatusSubmitted, models.ApplicationStatusInReview,
		models.ApplicationStatusApproved, models.ApplicationStatusDeclined:
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown application status"})
		return
	}

	app.Status = req.Status
	if err := h.db.Save(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app})
}
