package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

// LeadHandler handles lead CRUD for the authenticated partner
type LeadHandler struct {
	db *gorm.DB
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(db *gorm.DB) *LeadHandler {
	return &LeadHandler{db: db}
}

// CreateLeadRequest represents the request body for lead creation
type CreateLeadRequest struct {
	BusinessName            string   `json:"business_name" binding:"required"`
	ContactName             string   `json:"contact_name" binding:"required"`
	ContactEmail            string   `json:"contact_email" binding:"required,email"`
	ContactPhone            string   `json:"contact_phone"`
	BusinessType            string   `json:"business_type"`
	CurrentProcessor        string   `json:"current_processor"`
	MonthlyVolume           float64  `json:"monthly_volume"`
	AverageTicket           float64  `json:"average_ticket"`
	PotentialMonthlyRevenue float64  `json:"potential_monthly_revenue"`
	EstimatedMonthlyRevenue *float64 `json:"estimated_monthly_revenue"`
	Notes                   string   `json:"notes"`
}

// UpdateLeadRequest represents the request body for lead edits.
// Status changes go through UpdateStatus, not here.
type UpdateLeadRequest struct {
	BusinessName            string   `json:"business_name"`
	ContactName             string   `json:"contact_name"`
	ContactEmail            string   `json:"contact_email"`
	ContactPhone            *string  `json:"contact_phone"`
	BusinessType            *string  `json:"business_type"`
	CurrentProcessor        *string  `json:"current_processor"`
	MonthlyVolume           *float64 `json:"monthly_volume"`
	AverageTicket           *float64 `json:"average_ticket"`
	PotentialMonthlyRevenue *float64 `json:"potential_monthly_revenue"`
	EstimatedMonthlyRevenue *float64 `json:"estimated_monthly_revenue"`
	Notes                   *string  `json:"notes"`
}

// UpdateLeadStatusRequest represents the request body for a status transition
type UpdateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required"`
}

// List returns the partner's leads, newest first
func (h *LeadHandler) List(c *gin.Context) {
	userID, _ := currentUserID(c)

	var leads []models.Lead
	if err := h.db.Where("user_id = ?", userID).Order("submitted_at desc").Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// Get returns one of the partner's leads
func (h *LeadHandler) Get(c *gin.Context) {
	userID, _ := currentUserID(c)

	var lead models.Lead
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// Create submits a new lead with status initialized to submitted
func (h *LeadHandler) Create(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := models.Lead{
		UserID:                  userID,
		BusinessName:            req.BusinessName,
		ContactName:             req.ContactName,
		ContactEmail:            req.ContactEmail,
		BusinessType:            nilIfEmpty(req.BusinessType),
		ContactPhone:            nilIfEmpty(req.ContactPhone),
		CurrentProcessor:        nilIfEmpty(req.CurrentProcessor),
		MonthlyVolume:           req.MonthlyVolume,
		AverageTicket:           req.AverageTicket,
		PotentialMonthlyRevenue: req.PotentialMonthlyRevenue,
		EstimatedMonthlyRevenue: req.EstimatedMonthlyRevenue,
		Status:                  models.LeadStatusSubmitted,
		Notes:                   req.Notes,
		SubmittedAt:             time.Now(),
	}

	if err := h.db.Create(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

// Update edits a lead's fields
func (h *LeadHandler) Update(c *gin.Context) {
	userID, _ := currentUserID(c)

	var lead models.Lead
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ContactEmail != "" && !validEmail(req.ContactEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if req.BusinessName != "" {
		lead.BusinessName = req.BusinessName
	}
	if req.ContactName != "" {
		lead.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		lead.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		lead.ContactPhone = req.ContactPhone
	}
	if req.BusinessType != nil {
		lead.BusinessType = req.BusinessType
	}
	if req.CurrentProcessor != nil {
		lead.CurrentProcessor = req.CurrentProcessor
	}
	if req.MonthlyVolume != nil {
		lead.MonthlyVolume = *req.MonthlyVolume
	}
	if req.AverageTicket != nil {
		lead.AverageTicket = *req.AverageTicket
	}
	if req.PotentialMonthlyRevenue != nil {
		lead.PotentialMonthlyRevenue = *req.PotentialMonthlyRevenue
	}
	if req.EstimatedMonthlyRevenue != nil {
		lead.EstimatedMonthlyRevenue = req.EstimatedMonthlyRevenue
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}

	if err := h.db.Save(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// UpdateStatus transitions a lead through the status graph. Invalid moves
// are rejected at this write boundary rather than accepted as free text.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	userID, _ := currentUserID(c)

	var lead models.Lead
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidLeadStatus(req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown lead status"})
		return
	}
	if req.Status == lead.Status {
		c.JSON(http.StatusOK, gin.H{"lead": lead})
		return
	}
	if !models.CanTransitionLead(lead.Status, req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid status transition",
			"from":  lead.Status,
			"to":    req.Status,
		})
		return
	}

	lead.Status = req.Status
	if err := h.db.Save(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// Delete removes a lead. Only an explicit partner action lands here.
func (h *LeadHandler) Delete(c *gin.Context) {
	userID, _ := currentUserID(c)

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Lead{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

// nilIfEmpty returns a pointer to s, or nil for the empty string
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
