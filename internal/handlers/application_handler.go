package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/queue"
	"github.com/merchantfeeadvocate/backend/internal/utils"
)

// ApplicationHandler handles referral application submission and review
type ApplicationHandler struct {
	db   *gorm.DB
	jobs queue.Enqueuer
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(db *gorm.DB, jobs queue.Enqueuer) *ApplicationHandler {
	return &ApplicationHandler{db: db, jobs: jobs}
}

// ApplicationEmailPayload is the queued payload for the ops notification
type ApplicationEmailPayload struct {
	ApplicationID uuid.UUID `json:"application_id"`
}

// SubmitApplicationRequest represents the full referral application form
type SubmitApplicationRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	DBAName         string `json:"dba_name"`
	BusinessType    string `json:"business_type"`
	TaxID           string `json:"tax_id"`
	BusinessPhone   string `json:"business_phone"`
	BusinessEmail   string `json:"business_email"`
	BusinessAddress string `json:"business_address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code"`

	OwnerName   string `json:"owner_name" binding:"required"`
	OwnerSSN    string `json:"owner_ssn"`
	OwnerDOB    string `json:"owner_dob"`
	OwnerEmail  string `json:"owner_email"`
	OwnerPhone  string `json:"owner_phone"`
	HomeAddress string `json:"home_address"`

	MonthlyVolume float64 `json:"monthly_volume"`
	AverageTicket float64 `json:"average_ticket"`

	BankName          string `json:"bank_name"`
	BankRoutingNumber string `json:"bank_routing_number"`
	BankAccountNumber string `json:"bank_account_number"`

	VoidedCheckURL    string `json:"voided_check_url"`
	BankStatementURL  string `json:"bank_statement_url"`
	DriversLicenseURL string `json:"drivers_license_url"`
}

// Submit records a referral application and queues the ops notification.
// The email is fire and forget; a queue hiccup never fails the submission.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BusinessEmail != "" && !validEmail(req.BusinessEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	app := models.ReferralApplication{
		UserID:            userID,
		Reference:         utils.GenerateReference("APP"),
		BusinessName:      req.BusinessName,
		DBAName:           req.DBAName,
		BusinessType:      req.BusinessType,
		TaxID:             req.TaxID,
		BusinessPhone:     req.BusinessPhone,
		BusinessEmail:     req.BusinessEmail,
		BusinessAddress:   req.BusinessAddress,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		OwnerName:         req.OwnerName,
		OwnerSSN:          req.OwnerSSN,
		OwnerDOB:          req.OwnerDOB,
		OwnerEmail:        req.OwnerEmail,
		OwnerPhone:        req.OwnerPhone,
		HomeAddress:       req.HomeAddress,
		MonthlyVolume:     req.MonthlyVolume,
		AverageTicket:     req.AverageTicket,
		BankName:          req.BankName,
		BankRoutingNumber: req.BankRoutingNumber,
		BankAccountNumber: req.BankAccountNumber,
		VoidedCheckURL:    req.VoidedCheckURL,
		BankStatementURL:  req.BankStatementURL,
		DriversLicenseURL: req.DriversLicenseURL,
		Status:            models.ApplicationStatusSubmitted,
	}

	if err := h.db.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	if h.jobs != nil {
		if _, err := h.jobs.EnqueueJob(queue.JobTypeSendApplicationEmail, ApplicationEmailPayload{ApplicationID: app.ID}); err != nil {
			log.Printf("Failed to enqueue application notification for %s: %v", app.Reference, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// List returns the partner's own applications
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, _ := currentUserID(c)

	var apps []models.ReferralApplication
	if err := h.db.Where("user_id = ?", userID).Order("created_at desc").Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
