package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cleaning-supplies-api/auth"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	StoreDriver    string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	RequireAuth    bool
	KafkaBrokers   []string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	BrandsCacheTTL time.Duration
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		DBName:        getEnv("DB_NAME", "cleaning-supplies"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.TokenTTL, err = auth.ParseSpan(getEnv("EXPIRES_IN", "1h")); err != nil {
		return nil, fmt.Errorf("EXPIRES_IN: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(auth.DefaultCost))); err != nil {
		return nil, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if cfg.RequireAuth, err = strconv.ParseBool(getEnv("REQUIRE_AUTH", "false")); err != nil {
		return nil, fmt.Errorf("REQUIRE_AUTH: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.BrandsCacheTTL, err = time.ParseDuration(getEnv("BRANDS_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("BRANDS_CACHE_TTL: %w", err)
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGODB_URI is required for the mongo store")
		}
	case DriverMemory:
		log.Println("STORE_DRIVER=memory: data lives only as long as the process")
	default:
		return nil, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
