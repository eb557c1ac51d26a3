package api

import (
	"fmt"
	"net/http"

	"paperhub-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	storage *storage.SupabaseStorage
}

func NewUploadHandler(supabaseStorage *storage.SupabaseStorage) *UploadHandler {
	return &UploadHandler{
		storage: supabaseStorage,
	}
}

// UploadFile handles file uploads for chat attachments and paper files.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	const maxFileSize = 10 * 1024 * 1024 // 10MB
	if header.Size > maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	allowedTypes := map[string]bool{
		"image/jpeg":         true,
		"image/jpg":          true,
		"image/png":          true,
		"image/gif":          true,
		"image/webp":         true,
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"text/plain": true,
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File type not allowed: %s", contentType)})
		return
	}

	url, err := h.storage.UploadFile(file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to upload file: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  url,
		"name": header.Filename,
		"type": contentType,
		"size": header.Size,
	})
}
