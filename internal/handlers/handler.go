// Package handlers maps each bistro route onto a single collection operation.
package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro_back_end/internal/store"
	"bistro_back_end/internal/utils"
)

// ImageUploader stores a menu picture and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// Handler carries the process-wide collections and services into the routes.
type Handler struct {
	Users   store.Collection
	Menu    store.Collection
	Reviews store.Collection
	Carts   store.Collection

	Tokens *utils.TokenService
	// Images is nil when object storage is not configured.
	Images ImageUploader

	// DBTimeout bounds each database call. It is not tied to the client
	// connection, so a dropped request does not cancel its operation.
	DBTimeout time.Duration
}

func New(colls store.Collections, tokens *utils.TokenService, timeout time.Duration) *Handler {
	return &Handler{
		Users:     colls.Users,
		Menu:      colls.Menu,
		Reviews:   colls.Reviews,
		Carts:     colls.Carts,
		Tokens:    tokens,
		DBTimeout: timeout,
	}
}

func (h *Handler) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.DBTimeout)
}

// Home answers the liveness probe on "/".
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "boss is sitting")
}

// bindDocument reads the body as a free-form document. An empty body is an
// empty document.
func bindDocument(c *gin.Context) (store.Document, bool) {
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid JSON body"})
		return nil, false
	}
	if doc == nil {
		doc = store.Document{}
	}
	return doc, true
}

// objectIDParam parses a path id into the store's native id type. A bad id
// is treated like any other backend fault.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		fail(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// fail ends the request as a bare 500; ErrorLogger records err.
func fail(c *gin.Context, err error) {
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}
