package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/merchantfeeadvocate/backend/internal/models"
)

// ForumHandler handles the partner forum
type ForumHandler struct {
	db *gorm.DB
}

// NewForumHandler creates a new forum handler
func NewForumHandler(db *gorm.DB) *ForumHandler {
	return &ForumHandler{db: db}
}

// CreatePostRequest represents the request body for a new thread
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
}

// CreateReplyRequest represents the request body for a reply
type CreateReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListPosts returns forum threads, newest first
func (h *ForumHandler) ListPosts(c *gin.Context) {
	var posts []models.ForumPost
	query := h.db.Order("created_at desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns one thread with its replies, looked up by slug
func (h *ForumHandler) GetPost(c *gin.Context) {
	var post models.ForumPost
	err := h.db.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("slug = ?", c.Param("slug")).First(&post).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost opens a new thread. Slugs come from the title; collisions get
// a numeric suffix.
func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := slug.Make(req.Title)
	postSlug := base
	for i := 2; ; i++ {
		var count int64
		if err := h.db.Model(&models.ForumPost{}).Where("slug = ?", postSlug).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		if count == 0 {
			break
		}
		postSlug = fmt.Sprintf("%s-%d", base, i)
	}

	post := models.ForumPost{
		UserID:   userID,
		Title:    req.Title,
		Slug:     postSlug,
		Body:     req.Body,
		Category: req.Category,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// CreateReply adds a reply to a thread and bumps its reply count
func (h *ForumHandler) CreateReply(c *gin.Context) {
	userID, _ := currentUserID(c)

	var post models.ForumPost
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := models.ForumReply{
		PostID: post.ID,
		UserID: userID,
		Body:   req.Body,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.ForumPost{}).Where("id = ?", post.ID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reply": reply})
}

// DeletePost removes a thread; only its author may do so
func (h *ForumHandler) DeletePost(c *gin.Context) {
	userID, _ := currentUserID(c)

	result := h.db.Where("slug = ? AND user_id = ?", c.Param("slug"), userID).Delete(&models.ForumPost{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// DeleteReply removes a reply; only its author may do so
func (h *ForumHandler) DeleteReply(c *gin.Context) {
	userID, _ := currentUserID(c)

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.ForumReply{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}
