package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/store"
)

// GetReviews lists every review; reviews are read-only here.
func (h *Handler) GetReviews(c *gin.Context) {
	ctx, cancel := h.dbContext()
	defer cancel()

	reviews, err := store.FindAll(ctx, h.Reviews)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
