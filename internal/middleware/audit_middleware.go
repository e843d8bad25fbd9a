package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Audited actions.
const (
	ActionPromoteAdmin   = "promote_admin"
	ActionAddMenuItem    = "add_menu_item"
	ActionDeleteMenuItem = "delete_menu_item"
	ActionUploadImage    = "upload_menu_image"
	ActionDeleteCartItem = "delete_cart_item"
)

// AuditCriticalActions logs who ran action against :id and whether it
// succeeded. Anonymous callers are recorded as "-".
func AuditCriticalActions(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		actor, ok := TokenEmail(c)
		if !ok {
			actor = "-"
		}
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			log.Printf("📝 audit action=%s id=%q actor=%s ip=%s request_id=%s",
				action, c.Param("id"), actor, c.ClientIP(), c.GetString(RequestIDKey))
			return
		}
		log.Printf("⚠️ audit action=%s id=%q actor=%s ip=%s request_id=%s failed status=%d",
			action, c.Param("id"), actor, c.ClientIP(), c.GetString(RequestIDKey), status)
	}
}
