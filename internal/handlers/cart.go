package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/middleware"
	"bistro_back_end/internal/models"
	"bistro_back_end/internal/store"
)

var forbiddenAccess = gin.H{"error": true, "message": "forbidden access"}

// AddToCart stores a denormalized copy of the chosen menu item (POST /carts).
func (h *Handler) AddToCart(c *gin.Context) {
	item, ok := bindDocument(c)
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	result, err := h.Carts.InsertOne(ctx, item)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCart lists the cart of ?email=, which must be the token holder's.
// Without an email the answer is an empty list.
func (h *Handler) GetCart(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []store.Document{})
		return
	}

	if tokenEmail, ok := middleware.TokenEmail(c); !ok || tokenEmail != email {
		c.JSON(http.StatusForbidden, forbiddenAccess)
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	items, err := h.Carts.Find(ctx, store.Filter{models.FieldEmail: email})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteCartItem removes the cart entry :id without any ownership check.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	h.deleteCartItem(c, false)
}

// DeleteOwnCartItem removes the cart entry :id only when it belongs to the
// token holder. Used in lockdown mode.
func (h *Handler) DeleteOwnCartItem(c *gin.Context) {
	h.deleteCartItem(c, true)
}

func (h *Handler) deleteCartItem(c *gin.Context, checkOwner bool) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	filter := store.Filter{models.FieldID: id}
	if checkOwner {
		item, err := h.Carts.FindOne(ctx, filter)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			fail(c, err)
			return
		}
		if item != nil {
			owner, _ := item[models.FieldEmail].(string)
			if tokenEmail, ok := middleware.TokenEmail(c); !ok || tokenEmail != owner {
				c.JSON(http.StatusForbidden, forbiddenAccess)
				return
			}
		}
	}

	result, err := h.Carts.DeleteOne(ctx, filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
