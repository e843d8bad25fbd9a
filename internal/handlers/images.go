package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/services"
)

const uploadTimeout = 30 * time.Second

// UploadMenuImage stores the multipart "image" field and returns its URL
// for use in a later POST /menu.
func (h *Handler) UploadMenuImage(c *gin.Context) {
	if h.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": true, "message": "image storage not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "missing image file"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	url, err := h.Images.Upload(ctx, file)
	if errors.Is(err, services.ErrNotImage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "file must be an image"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
