package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs the errors handlers attached with c.Error / c.AbortWithError.
// The response itself stays a bare status code.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			log.Printf("❌ [%s] %s %s -> %d: %v",
				c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), e.Err)
		}
	}
}
