package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

const PROD_STRING = "prod"

// DefaultUsersEndpoint is the remote user list fetched on screen activation.
const DefaultUsersEndpoint = "https://randomuser.me/api/?seed=1&page=1&results=20"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	HTTPAddr       string
	UsersEndpoint  string
	FetchTimeout   time.Duration
	ScreenIdleTTL  time.Duration
	EmailMatchMode userrecord.MatchMode
	ThumbnailSize  int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Remote endpoint returning {"results": [...]}
	cfg.UsersEndpoint = getEnv("USERS_ENDPOINT", DefaultUsersEndpoint)
	if cfg.UsersEndpoint == "" {
		return nil, fmt.Errorf("USERS_ENDPOINT must not be empty")
	}

	// Zero keeps the request unbounded: a hung endpoint leaves the screen loading.
	cfg.FetchTimeout, err = getEnvAsDuration("FETCH_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	// Screens untouched for this long are deactivated. Zero disables expiry.
	cfg.ScreenIdleTTL, err = getEnvAsDuration("SCREEN_IDLE_TTL", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid SCREEN_IDLE_TTL: %w", err)
	}

	// "faithful" (default) or "normalized"
	cfg.EmailMatchMode, err = userrecord.ParseMatchMode(getEnv("EMAIL_MATCH_MODE", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_MATCH_MODE: %w", err)
	}

	// Avatar edge length in pixels (default: 60)
	cfg.ThumbnailSize, err = getEnvAsInt("THUMBNAIL_SIZE", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid THUMBNAIL_SIZE: %w", err)
	}
	if cfg.ThumbnailSize <= 0 {
		return nil, fmt.Errorf("THUMBNAIL_SIZE must be positive, got %d", cfg.ThumbnailSize)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses a time.Duration such as "10s" or "1m".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("env %s value %q must not be negative", key, valStr)
	}

	return val, nil
}
