package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/models"
	"bistro_back_end/internal/store"
)

func (h *Handler) GetMenu(c *gin.Context) {
	ctx, cancel := h.dbContext()
	defer cancel()

	items, err := store.FindAll(ctx, h.Menu)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddMenuItem stores the posted item verbatim (POST /menu, admin only).
func (h *Handler) AddMenuItem(c *gin.Context) {
	item, ok := bindDocument(c)
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	result, err := h.Menu.InsertOne(ctx, item)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	result, err := h.Menu.DeleteOne(ctx, store.Filter{models.FieldID: id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
