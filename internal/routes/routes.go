package routes

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/handlers"
	"bistro_back_end/internal/middleware"
)

type Options struct {
	// RequestLogging adds gin's access log.
	RequestLogging bool
	// CORSOrigins empty means any origin.
	CORSOrigins []string
	// RateLimit is nil when Redis is not configured.
	RateLimit gin.HandlerFunc
	// LockdownOpenRoutes puts admin promotion behind token+admin and cart
	// deletion behind a token and an ownership check.
	LockdownOpenRoutes bool
}

// NewRouter builds the engine with the ambient middleware and every route.
func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.New()
	if opts.RequestLogging {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorLogger(), cors.New(corsConfig(opts.CORSOrigins)))
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit)
	}

	RegisterRoutes(r, h, opts.LockdownOpenRoutes)
	return r
}

func RegisterRoutes(r gin.IRouter, h *handlers.Handler, lockdown bool) {
	verifyJWT := middleware.AuthRequired(h.Tokens)
	verifyAdmin := middleware.RequireAdmin(h.Users, h.DBTimeout)
	audit := middleware.AuditCriticalActions

	r.GET("/", h.Home)
	r.POST("/jwt", h.IssueToken)

	// Users
	r.GET("/users", verifyJWT, verifyAdmin, h.GetUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/admin/:email", verifyJWT, h.CheckAdmin)
	if lockdown {
		r.PATCH("/users/admin/:id", verifyJWT, verifyAdmin, audit(middleware.ActionPromoteAdmin), h.MakeAdmin)
	} else {
		r.PATCH("/users/admin/:id", audit(middleware.ActionPromoteAdmin), h.MakeAdmin)
	}

	// Menu
	r.GET("/menu", h.GetMenu)
	r.POST("/menu", verifyJWT, verifyAdmin, audit(middleware.ActionAddMenuItem), h.AddMenuItem)
	r.POST("/menu/image", verifyJWT, verifyAdmin, audit(middleware.ActionUploadImage), h.UploadMenuImage)
	r.DELETE("/menu/:id", verifyJWT, verifyAdmin, audit(middleware.ActionDeleteMenuItem), h.DeleteMenuItem)

	// Reviews
	r.GET("/review", h.GetReviews)

	// Carts
	r.POST("/carts", h.AddToCart)
	r.GET("/carts", verifyJWT, h.GetCart)
	if lockdown {
		r.DELETE("/carts/:id", verifyJWT, audit(middleware.ActionDeleteCartItem), h.DeleteOwnCartItem)
	} else {
		r.DELETE("/carts/:id", audit(middleware.ActionDeleteCartItem), h.DeleteCartItem)
	}
}

func corsConfig(origins []string) cors.Config {
	if slices.Contains(origins, "*") {
		origins = nil
	}
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
