package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merchantfeeadvocate/backend/internal/services/enrollment"
	"github.com/merchantfeeadvocate/backend/internal/utils"
)

// CheckoutHandler runs the funnel's purchase step
type CheckoutHandler struct {
	enrollment *enrollment.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(enrollmentSvc *enrollment.Service) *CheckoutHandler {
	return &CheckoutHandler{enrollment: enrollmentSvc}
}

// CheckoutRequest represents the request body for checkout
type CheckoutRequest struct {
	Email        string  `json:"email" binding:"required"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Phone        string  `json:"phone"`
	CompanyName  string  `json:"company_name"`
	PlanName     string  `json:"plan_name" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	BusinessName string  `json:"business_name"`
	BusinessType string  `json:"business_type"`
}

// Checkout validates the form and enrolls the partner. Email format is
// checked before anything touches the database, so a malformed address
// issues no writes at all.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	user, purchase, err := h.enrollment.Checkout(enrollment.CheckoutParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
		PlanName:     req.PlanName,
		Amount:       req.Amount,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
	})
	if err != nil {
		if errors.Is(err, enrollment.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout"})
		return
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     user,
		"purchase": purchase,
		"tokens":   tokens,
	})
}
