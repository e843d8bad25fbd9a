package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bistro_back_end/internal/config"
	"bistro_back_end/internal/models"
	"bistro_back_end/internal/store"
)

const connectTimeout = 30 * time.Second

// Connect opens the bistro collections for the configured driver.
//
// A MongoDB failure is only logged: the returned collections then fail every
// operation and the server keeps listening. The returned close func is never nil.
func Connect(cfg config.DBConfig) (store.Collections, func()) {
	if cfg.Driver == config.DriverMemory {
		log.Println("🧪 Using in-memory collections")
		return store.NewMemoryCollections(), func() {}
	}

	client, err := connectMongo(cfg.URI)
	if err != nil {
		log.Printf("❌ MongoDB connection failed: %v", err)
		return store.UnavailableCollections(err), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Printf("❌ MongoDB ping failed: %v", err)
	} else {
		log.Println("✅ Pinged MongoDB, connection established")
	}

	db := client.Database(cfg.Name)
	colls := store.Collections{
		Users:   OpenCollection(db, models.UsersCollection),
		Menu:    OpenCollection(db, models.MenuCollection),
		Reviews: OpenCollection(db, models.ReviewsCollection),
		Carts:   OpenCollection(db, models.CartsCollection),
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("⚠️ MongoDB disconnect: %v", err)
		}
	}
	return colls, closeFn
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return client, nil
}

func OpenCollection(db *mongo.Database, name string) store.Collection {
	return store.NewMongoCollection(db.Collection(name))
}

// ConnectRedis returns nil when Redis is not configured or unreachable;
// callers treat a nil client as "feature disabled".
func ConnectRedis(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable, rate limiting disabled: %v", err)
		_ = client.Close()
		return nil
	}
	log.Println("✅ Connected to Redis")
	return client
}
