package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merchantfeeadvocate/backend/internal/config"
	"github.com/merchantfeeadvocate/backend/internal/session"
)

// AdminSessionHandler issues and revokes admin sessions. Credentials are
// checked server-side against configuration and successful logins get an
// opaque expiring token from the session store; nothing about admin access
// is ever trusted from the client.
type AdminSessionHandler struct {
	cfg   config.AdminConfig
	store session.Store
}

// NewAdminSessionHandler creates a new admin session handler
func NewAdminSessionHandler(cfg config.AdminConfig, store session.Store) *AdminSessionHandler {
	return &AdminSessionHandler{cfg: cfg, store: store}
}

// AdminLoginRequest represents the request body for admin login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the operator credentials and opens a session
func (h *AdminSessionHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.cfg.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Password)) == 1
	if !emailOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	ttl := time.Duration(h.cfg.SessionTTLMins) * time.Minute
	token, err := h.store.Create(c.Request.Context(), h.cfg.Email, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int64(ttl.Seconds()),
	})
}

// Logout revokes the current admin session
func (h *AdminSessionHandler) Logout(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin session token required"})
		return
	}

	if err := h.store.Revoke(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
