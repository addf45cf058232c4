package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Image storage backends.
const (
	storageFS = "fs"
	storageS3 = "s3"
)

// config is the full application configuration.
type config struct {
	AppHost  string
	AppPort  string
	GRPCPort string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	// KafkaBrokers is empty when event publishing is disabled.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExp       time.Duration

	StorageBackend string
	MediaRoot      string
	MediaURL       string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, JWT and storage configuration.
// Variables already present in the environment win over the file.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	cfg := &config{}
	var err error

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return nil, err
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return nil, err
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return nil, err
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return nil, err
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return nil, err
	}

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "recipe-events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtExpSecond, err := getInt("JWT_EXP_SECOND", "86400")
	if err != nil {
		return nil, err
	}
	cfg.JWTExp = time.Duration(jwtExpSecond) * time.Second

	// Storage config
	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", storageFS))
	cfg.MediaRoot = getEnv("MEDIA_ROOT", "media")
	cfg.MediaURL = getEnv("MEDIA_URL", "/media/")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3Bucket = getEnv("S3_BUCKET", "recipe-media")
	cfg.S3PublicURL = getEnv("S3_PUBLIC_URL", "")

	switch cfg.StorageBackend {
	case storageFS:
	case storageS3:
		if cfg.S3PublicURL == "" {
			return nil, fmt.Errorf("S3_PUBLIC_URL is required for the s3 storage backend")
		}
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}
