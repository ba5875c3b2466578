package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	handler := NewAuthHandler(db)
	router := gin.New()
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.RefreshToken)
	return router
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	router := newAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/auth/signup", gin.H{
		"email":         "new@example.com",
		"password":      "password1234",
		"first_name":    "Pat",
		"last_name":     "Partner",
		"business_name": "Pat Consulting",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "new@example.com").Error)
	assert.Equal(t, models.UserStatusPending, user.Status)

	var profile models.PartnerProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Pat Consulting", profile.BusinessName)

	// same email again conflicts
	w = doJSON(t, router, http.MethodPost, "/auth/signup", gin.H{
		"email":      "new@example.com",
		"password":   "password1234",
		"first_name": "Pat",
		"last_name":  "Partner",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	user := createTestPartner(t, db, "p@example.com", 30)
	router := newAuthRouter(db)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
			"email": "p@example.com", "password": "password1234",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Contains(t, body, "tokens")

		// last login timestamp is recorded
		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
			"email": "p@example.com", "password": "wrong-password",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
			"email": "nobody@example.com", "password": "password1234",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
	})

	t.Run("suspended account blocked", func(t *testing.T) {
		require.NoError(t, db.Model(user).Update("status", models.UserStatusSuspended).Error)
		defer db.Model(user).Update("status", models.UserStatusActive)

		w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
			"email": "p@example.com", "password": "password1234",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	createTestPartner(t, db, "p@example.com", 30)
	router := newAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "p@example.com", "password": "password1234",
	})
	require.Equal(t, http.StatusOK, w.Code)

	tokens := decodeBody(t, w)["tokens"].(map[string]interface{})
	refresh := tokens["refresh_token"].(string)

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "tokens")

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{
		"refresh_token": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
