package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IssueToken signs whatever object the client posts (POST /jwt).
func (h *Handler) IssueToken(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	token, err := h.Tokens.Issue(payload)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
