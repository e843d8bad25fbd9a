package main

import (
	"context"
	"log"
	"time"

	"bistro_back_end/internal/cache"
	"bistro_back_end/internal/config"
	"bistro_back_end/internal/database"
	"bistro_back_end/internal/handlers"
	"bistro_back_end/internal/middleware"
	"bistro_back_end/internal/routes"
	"bistro_back_end/internal/services"
	"bistro_back_end/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	colls, closeDB := database.Connect(cfg.DB)
	defer closeDB()

	h := handlers.New(colls, utils.NewTokenService(cfg.AccessTokenSecret), cfg.DB.Timeout)
	if images := connectImages(cfg.MinIO); images != nil {
		h.Images = images
	}

	opts := routes.Options{
		RequestLogging:     true,
		CORSOrigins:        cfg.CORSOrigins,
		LockdownOpenRoutes: cfg.LockdownOpenRoutes,
	}
	if client := database.ConnectRedis(cfg.Redis); client != nil {
		defer client.Close()
		opts.RateLimit = middleware.RateLimit(cache.NewRedisCounter(client), cfg.Redis.RatePerMinute, time.Minute)
		log.Printf("🚦 Rate limit: %d requests/minute per IP", cfg.Redis.RatePerMinute)
	}
	if cfg.LockdownOpenRoutes {
		log.Println("🔐 Lockdown enabled: admin promotion and cart deletion require a token")
	}

	r := routes.NewRouter(h, opts)

	log.Println("🚀 Bistro server listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}

func connectImages(cfg config.MinIOConfig) *services.ImageStore {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return services.ConnectImageStore(ctx, cfg)
}
