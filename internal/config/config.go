package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port               string `validate:"required,numeric"`
	AccessTokenSecret  string `validate:"required"`
	LockdownOpenRoutes bool
	CORSOrigins        []string

	DB    DBConfig
	Redis RedisConfig
	MinIO MinIOConfig
}

type DBConfig struct {
	Driver  string        `validate:"oneof=mongo memory"`
	URI     string        `validate:"required_if=Driver mongo"`
	Name    string        `validate:"required"`
	Timeout time.Duration `validate:"gt=0"`
}

type RedisConfig struct {
	Addr          string
	Password      string
	RatePerMinute int `validate:"gte=0"`
}

// Enabled reports whether rate limiting should be wired.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type MinIOConfig struct {
	Endpoint  string
	AccessKey string `validate:"required_with=Endpoint"`
	SecretKey string `validate:"required_with=Endpoint"`
	Bucket    string `validate:"required_with=Endpoint"`
	UseSSL    bool
}

func (m MinIOConfig) Enabled() bool { return m.Endpoint != "" }

var validate = validator.New()

// Load reads .env when present, then builds the configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using system environment")
	} else {
		log.Println("✅ .env file loaded")
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration without touching .env.
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("DB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_TIMEOUT: %w", err)
	}
	rate, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		LockdownOpenRoutes: getBool("LOCKDOWN_OPEN_ROUTES"),
		CORSOrigins:        splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DB: DBConfig{
			Driver:  strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
			URI:     mongoURI(),
			Name:    getEnv("DB_NAME", "bistroDb"),
			Timeout: timeout,
		},
		Redis: RedisConfig{
			Addr:          os.Getenv("REDIS_ADDR"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			RatePerMinute: rate,
		},
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "bistro-menu"),
			UseSSL:    getBool("MINIO_USE_SSL"),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mongoURI prefers MONGODB_URI and otherwise assembles an Atlas SRV string
// from DB_USER / DB_PASS / DB_HOST.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASS")
	if user == "" || pass == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     getEnv("DB_HOST", "cluster0.mongodb.net"),
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
