// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

const defaultSpannerDB = "projects/test-project/instances/dev-instance/databases/ordertally-db"

// Config holds all configuration for the application.
type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
	// SnowflakeNode distinguishes id generators of concurrently running
	// processes sharing one store.
	SnowflakeNode int64
	// ActivityRetention is how long cleanup_activity keeps events.
	ActivityRetention time.Duration

	Store    kvstore.Config
	Artifact artifact.Config
}

// Load reads configuration from environment variables. A missing .env
// file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	node, err := getInt("SNOWFLAKE_NODE", 1)
	if err != nil {
		return nil, err
	}
	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	retentionDays, err := getInt("ACTIVITY_RETENTION_DAYS", 30)
	if err != nil {
		return nil, err
	}
	debug, err := getBool("STORE_DEBUG", false)
	if err != nil {
		return nil, err
	}
	pathStyle, err := getBool("S3_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout:   shutdown,
		SnowflakeNode:     int64(node),
		ActivityRetention: time.Duration(retentionDays) * 24 * time.Hour,
		Store: kvstore.Config{
			Driver:      kvstore.Driver(getEnv("STORE_DRIVER", string(kvstore.DriverSQLite))),
			SQLitePath:  getEnv("SQLITE_PATH", "ordertally.db"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
			SpannerDB:   getEnv("SPANNER_DATABASE", defaultSpannerDB),
			Debug:       debug,
		},
		Artifact: artifact.Config{
			Driver: artifact.Driver(getEnv("ARTIFACT_DRIVER", string(artifact.DriverFilesystem))),
			FSRoot: getEnv("ARTIFACT_DIR", "./exports"),
			S3: artifact.S3Config{
				Region:          getEnv("S3_REGION", "us-east-1"),
				Bucket:          getEnv("S3_BUCKET", ""),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
				PathStyle:       pathStyle,
				Prefix:          getEnv("S3_PREFIX", ""),
			},
		},
	}, nil
}

// getEnv gets an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
