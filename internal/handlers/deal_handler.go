package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

// DealHandler handles deal CRUD and pipeline transitions
type DealHandler struct {
	db *gorm.DB
}

// NewDealHandler creates a new deal handler
func NewDealHandler(db *gorm.DB) *DealHandler {
	return &DealHandler{db: db}
}

// CreateDealRequest represents the request body for deal creation. When
// LeadID is set the deal is derived from that lead: display fields default
// to the lead's and the lead's status follows the deal's initial stage.
type CreateDealRequest struct {
	LeadID            *uuid.UUID       `json:"lead_id"`
	BusinessName      string           `json:"business_name"`
	ContactName       string           `json:"contact_name"`
	ContactEmail      string           `json:"contact_email"`
	Value             float64          `json:"value" binding:"required,gt=0"`
	CommissionRate    *float64         `json:"commission_rate"`
	Stage             models.DealStage `json:"stage"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	Notes             string           `json:"notes"`
}

// UpdateDealRequest represents the request body for deal edits
type UpdateDealRequest struct {
	BusinessName      string     `json:"business_name"`
	ContactName       string     `json:"contact_name"`
	ContactEmail      string     `json:"contact_email"`
	Value             *float64   `json:"value"`
	CommissionRate    *float64   `json:"commission_rate"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             *string    `json:"notes"`
}

// UpdateDealStageRequest represents the request body for a stage transition
type UpdateDealStageRequest struct {
	Stage models.DealStage `json:"stage" binding:"required"`
}

// List returns the partner's deals, newest first
func (h *DealHandler) List(c *gin.Context) {
	userID, _ := currentUserID(c)

	var deals []models.Deal
	if err := h.db.Where("user_id = ?", userID).Order("created_at desc").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// Get returns one of the partner's deals
func (h *DealHandler) Get(c *gin.Context) {
	userID, _ := currentUserID(c)

	var deal models.Deal
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deal": deal})
}

// Create opens a deal, standalone or derived from a lead. Conversion keeps
// the lead alive and moves its status inside the same transaction.
func (h *DealHandler) Create(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = models.DealStageQualified
	}
	if !models.ValidDealStage(stage) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown deal stage"})
		return
	}

	commissionRate := 0.0
	if req.CommissionRate != nil {
		commissionRate = *req.CommissionRate
	} else {
		var user models.User
		if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve commission rate"})
			return
		}
		commissionRate = user.CommissionRate
	}

	deal := models.Deal{
		UserID:            userID,
		BusinessName:      req.BusinessName,
		ContactName:       req.ContactName,
		ContactEmail:      req.ContactEmail,
		Value:             req.Value,
		CommissionRate:    commissionRate,
		Stage:             stage,
		ExpectedCloseDate: req.ExpectedCloseDate,
		Notes:             req.Notes,
	}

	if req.LeadID == nil {
		if deal.BusinessName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Business name is required"})
			return
		}
		if err := h.db.Create(&deal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"deal": deal})
		return
	}

	var lead models.Lead
	if err := h.db.Where("id = ? AND user_id = ?", *req.LeadID, userID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	leadStatus := models.LeadStatusForStage(stage)
	if lead.Status != leadStatus && !models.CanTransitionLead(lead.Status, leadStatus) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Lead cannot move to this stage"})
		return
	}

	deal.LeadID = &lead.ID
	if deal.BusinessName == "" {
		deal.BusinessName = lead.BusinessName
	}
	if deal.ContactName == "" {
		deal.ContactName = lead.ContactName
	}
	if deal.ContactEmail == "" {
		deal.ContactEmail = lead.ContactEmail
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deal).Error; err != nil {
			return err
		}
		if lead.Status != leadStatus {
			if err := tx.Model(&models.Lead{}).Where("id = ?", lead.ID).
				Update("status", leadStatus).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deal": deal})
}

// Update edits a deal's fields. The stored commission amount is recomputed
// at save time, so value or rate edits can't leave it stale.
func (h *DealHandler) Update(c *gin.Context) {
	userID, _ := currentUserID(c)

	var deal models.Deal
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	var req UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BusinessName != "" {
		deal.BusinessName = req.BusinessName
	}
	if req.ContactName != "" {
		deal.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		deal.ContactEmail = req.ContactEmail
	}
	if req.Value != nil {
		deal.Value = *req.Value
	}
	if req.CommissionRate != nil {
		deal.CommissionRate = *req.CommissionRate
	}
	if req.ExpectedCloseDate != nil {
		deal.ExpectedCloseDate = req.ExpectedCloseDate
	}
	if req.Notes != nil {
		deal.Notes = *req.Notes
	}

	if err := h.db.Save(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deal": deal})
}

// UpdateStage moves a deal through the pipeline, rejecting transitions the
// stage graph forbids.
func (h *DealHandler) UpdateStage(c *gin.Context) {
	userID, _ := currentUserID(c)

	var deal models.Deal
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	var req UpdateDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidDealStage(req.Stage) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown deal stage"})
		return
	}
	if req.Stage == deal.Stage {
		c.JSON(http.StatusOK, gin.H{"deal": deal})
		return
	}
	if !models.CanTransitionDeal(deal.Stage, req.Stage) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid stage transition",
			"from":  deal.Stage,
			"to":    req.Stage,
		})
		return
	}

	deal.Stage = req.Stage
	if err := h.db.Save(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal stage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deal": deal})
}

// Delete removes a deal
func (h *DealHandler) Delete(c *gin.Context) {
	userID, _ := currentUserID(c)

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Deal{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted"})
}
