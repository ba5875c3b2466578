package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/merchantfeeadvocate/backend/internal/services/storage"
)

// maxUploadBytes caps a single document upload
const maxUploadBytes = 10 << 20 // 10 MiB

// UploadHandler stores partner document uploads and returns public URLs
type UploadHandler struct {
	store *storage.FileStore
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store *storage.FileStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart file plus an optional path and responds with
// the file's public URL. Re-uploading the same path overwrites.
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, _ := currentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	path := c.PostForm("path")
	if path == "" {
		path = fmt.Sprintf("%s/%s", userID, filepath.Base(file.Filename))
	} else {
		// uploads always live under the requesting user's prefix
		path = fmt.Sprintf("%s/%s", userID, path)
	}

	publicURL, err := h.store.Save(file, path)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload path"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"public_url": publicURL})
}
