package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/utils"
)

// Context keys set by AuthRequired.
const (
	ClaimsKey = "claims"
	EmailKey  = "email"
)

var unauthorized = gin.H{"error": true, "message": "unauthorized access"}

// AuthRequired verifies the bearer token and stores its claims in the context.
// The token is the second space-separated part of the header; the scheme
// word itself is not checked.
func AuthRequired(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}

		var tokenString string
		if parts := strings.Split(authHeader, " "); len(parts) > 1 {
			tokenString = parts[1]
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			log.Printf("🔒 Rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}

		c.Set(ClaimsKey, claims)
		if email, ok := claims.Email(); ok {
			c.Set(EmailKey, email)
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired, or nil.
func ClaimsFrom(c *gin.Context) utils.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(utils.Claims); ok {
			return claims
		}
	}
	return nil
}

// TokenEmail returns the email claim of the authenticated caller.
func TokenEmail(c *gin.Context) (string, bool) {
	email, ok := c.Get(EmailKey)
	if !ok {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
