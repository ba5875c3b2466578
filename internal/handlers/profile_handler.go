package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

// ProfileHandler serves the partner's account and business profile
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`

	BusinessName      *string `json:"business_name"`
	BusinessType      *string `json:"business_type"`
	TaxID             *string `json:"tax_id"`
	Website           *string `json:"website"`
	AddressLine1      *string `json:"address_line1"`
	AddressLine2      *string `json:"address_line2"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	ZipCode           *string `json:"zip_code"`
	BankName          *string `json:"bank_name"`
	BankRoutingNumber *string `json:"bank_routing_number"`
	BankAccountNumber *string `json:"bank_account_number"`
	W9DocumentURL     *string `json:"w9_document_url"`
	VoidedCheckURL    *string `json:"voided_check_url"`
}

// Get returns the user together with their partner profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, _ := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var profile models.PartnerProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// Update edits the user's display fields and business profile. The profile
// row is created on first write if enrollment never made one.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.CompanyName != nil {
		user.CompanyName = req.CompanyName
	}

	var profile models.PartnerProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.PartnerProfile{UserID: userID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.BusinessName, req.BusinessName)
	applyString(&profile.BusinessType, req.BusinessType)
	applyString(&profile.TaxID, req.TaxID)
	applyString(&profile.Website, req.Website)
	applyString(&profile.AddressLine1, req.AddressLine1)
	applyString(&profile.AddressLine2, req.AddressLine2)
	applyString(&profile.City, req.City)
	applyString(&profile.State, req.State)
	applyString(&profile.ZipCode, req.ZipCode)
	applyString(&profile.BankName, req.BankName)
	applyString(&profile.BankRoutingNumber, req.BankRoutingNumber)
	applyString(&profile.BankAccountNumber, req.BankAccountNumber)
	applyString(&profile.W9DocumentURL, req.W9DocumentURL)
	applyString(&profile.VoidedCheckURL, req.VoidedCheckURL)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}
