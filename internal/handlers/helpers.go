package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail reports whether s looks like a deliverable address
func validEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// currentUserID pulls the authenticated user's id set by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
