package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendR2       = "r2"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	ServerPort     int
	StorageBackend string
	DatabaseURL    string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	R2Endpoint        string
	R2KeyPrefix       string

	EditWindowLocation *time.Location
	ShuffleFirstRound  bool
	// ShuffleSeed makes the round 1 shuffle reproducible. Zero means random.
	ShuffleSeed uint64

	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		ServerPort:         port,
		StorageBackend:     strings.ToLower(stringEnv("STORAGE_BACKEND", BackendR2)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
		R2Endpoint:         os.Getenv("R2_ENDPOINT"),
		R2KeyPrefix:        stringEnv("R2_KEY_PREFIX", "tournaments"),
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	switch cfg.StorageBackend {
	case BackendR2:
		if cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required for the r2 backend")
		}
		if cfg.R2AccountID == "" && cfg.R2Endpoint == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID or R2_ENDPOINT is required for the r2 backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q, expected r2, postgres or memory", cfg.StorageBackend)
	}

	cfg.EditWindowLocation, err = time.LoadLocation(stringEnv("EDIT_WINDOW_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid EDIT_WINDOW_TIMEZONE: %w", err)
	}

	if raw := os.Getenv("SHUFFLE_FIRST_ROUND"); raw != "" {
		cfg.ShuffleFirstRound, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUFFLE_FIRST_ROUND environment variable: %w", err)
		}
	}
	if raw := os.Getenv("SHUFFLE_SEED"); raw != "" {
		cfg.ShuffleSeed, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUFFLE_SEED environment variable: %w", err)
		}
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func listEnv(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
