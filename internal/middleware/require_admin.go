package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/models"
	"bistro_back_end/internal/store"
)

var forbidden = gin.H{"error": true, "message": "forbidden message"}

// RequireAdmin must run after AuthRequired. It reloads the caller's user
// document on every request and only lets stored admins through.
func RequireAdmin(users store.Collection, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := TokenEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, forbidden)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := users.FindOne(ctx, store.Filter{models.FieldEmail: email})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		if !models.RoleOf(user).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, forbidden)
			return
		}
		c.Next()
	}
}
