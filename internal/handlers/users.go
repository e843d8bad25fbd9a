package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/middleware"
	"bistro_back_end/internal/models"
	"bistro_back_end/internal/store"
)

// GetUsers lists every user (GET /users, admin only).
func (h *Handler) GetUsers(c *gin.Context) {
	ctx, cancel := h.dbContext()
	defer cancel()

	users, err := store.FindAll(ctx, h.Users)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser inserts the posted user unless its email is already known.
// A duplicate is answered with a message, not an error status.
func (h *Handler) CreateUser(c *gin.Context) {
	user, ok := bindDocument(c)
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	_, err := h.Users.FindOne(ctx, store.Filter{models.FieldEmail: user[models.FieldEmail]})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "user already exist"})
		return
	case !errors.Is(err, store.ErrNotFound):
		fail(c, err)
		return
	}

	result, err := h.Users.InsertOne(ctx, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckAdmin reports whether :email is an admin. Asking about anyone other
// than the token holder yields {admin:false}, never 401/403.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")
	if tokenEmail, ok := middleware.TokenEmail(c); !ok || tokenEmail != email {
		c.JSON(http.StatusOK, gin.H{"admin": false})
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	user, err := h.Users.FindOne(ctx, store.Filter{models.FieldEmail: email})
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": models.RoleOf(user).IsAdmin()})
}

// MakeAdmin sets role=admin on the user :id. There is no way back.
func (h *Handler) MakeAdmin(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := h.dbContext()
	defer cancel()

	result, err := h.Users.UpdateOne(ctx,
		store.Filter{models.FieldID: id},
		store.Document{models.FieldRole: models.RoleAdmin.String()})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
