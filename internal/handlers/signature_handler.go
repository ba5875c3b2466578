package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merchantfeeadvocate/backend/internal/models"
	"github.com/merchantfeeadvocate/backend/internal/services/enrollment"
)

// SignatureHandler records enrollment document signatures
type SignatureHandler struct {
	enrollment *enrollment.Service
}

// NewSignatureHandler creates a new signature handler
func NewSignatureHandler(enrollmentSvc *enrollment.Service) *SignatureHandler {
	return &SignatureHandler{enrollment: enrollmentSvc}
}

// SignRequest represents the request body for signing a document
type SignRequest struct {
	Agreed     bool   `json:"agreed"`
	SignedName string `json:"signed_name" binding:"required"`
}

// Sign marks one enrollment document signed. The partner activates once
// both required documents are in.
func (h *SignatureHandler) Sign(c *gin.Context) {
	userID, _ := currentUserID(c)
	doc := models.DocumentType(c.Param("document"))

	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Agreed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must agree to the document terms"})
		return
	}

	activated, err := h.enrollment.RecordSignature(userID, doc, req.SignedName, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrUnknownDocument):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown document"})
		case errors.Is(err, enrollment.ErrAlreadySigned):
			c.JSON(http.StatusConflict, gin.H{"error": "Document already signed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record signature"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document":  doc,
		"status":    models.SignatureStatusSigned,
		"activated": activated,
	})
}

// Progress lists the partner's document signature states
func (h *SignatureHandler) Progress(c *gin.Context) {
	userID, _ := currentUserID(c)

	sigs, err := h.enrollment.SignatureProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch signatures"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signatures": sigs})
}
