package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	DB      DatabaseConfig
	Redis   RedisConfig
	S3      S3Config
	Token   TokenConfig
	Catalog CatalogConfig
	Worker  WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. An empty Host disables
// the catalog snapshot cache and catalog queries fall back to SQL filtering.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// S3Config contains the blob store configuration for product images.
// Endpoint is only set for S3-compatible stores outside AWS.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// TokenConfig contains parameters for the submission capability token that
// links master registration to listing submission.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// CatalogConfig contains catalog query tuning parameters.
type CatalogConfig struct {
	SnapshotTTL time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CleanupInterval time.Duration
	UploadOrphanAge time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis (optional)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// S3 blob store for product images
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "eu-central-1"),
		Bucket:          getEnv("S3_BUCKET", "qoloner-product-images"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Submission token
	cfg.Token.Secret = getEnv("SUBMISSION_TOKEN_SECRET", "")

	var err error
	if cfg.Token.TTL, err = parseDurationEnv("SUBMISSION_TOKEN_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SUBMISSION_TOKEN_TTL: %w", err)
	}
	if cfg.Catalog.SnapshotTTL, err = parseDurationEnv("CATALOG_SNAPSHOT_TTL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_SNAPSHOT_TTL: %w", err)
	}
	if cfg.Worker.CleanupInterval, err = parseDurationEnv("CLEANUP_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_INTERVAL: %w", err)
	}
	if cfg.Worker.UploadOrphanAge, err = parseDurationEnv("UPLOAD_ORPHAN_AGE", "1h"); err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_ORPHAN_AGE: %w", err)
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.Token.Secret == "" {
		return nil, errors.New("SUBMISSION_TOKEN_SECRET must be set for listing submission")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
