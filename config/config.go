package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the application needs. It is built once in
// main and handed to component constructors; no package keeps its own copy
// of environment state.
type Config struct {
	ListenAddr string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel string
	GinMode  string
}

// Load reads a .env file when present and assembles the configuration from
// the environment. JWT_SECRET is the only mandatory variable.
func Load() (*Config, error) {
	// best effort, env vars may come from the process environment
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres dbname=librarium port=5432 sslmode=disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "debug"),
		GinMode:       getEnv("GIN_MODE", "debug"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("REDIS_DB must be an integer")
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, errors.New("TOKEN_TTL must be a duration such as 1h or 30m")
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
